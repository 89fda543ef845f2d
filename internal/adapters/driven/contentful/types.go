package contentful

// sys is the resource envelope every management API object carries.
type sys struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Version int    `json:"version"`
}

// assetFile is the file description inside an asset's fields, keyed
// by locale in the wire format.
type assetFile struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Upload      string `json:"upload,omitempty"`
	URL         string `json:"url,omitempty"`
}

// assetFields is the localised field set of an asset.
type assetFields struct {
	Title       map[string]string    `json:"title,omitempty"`
	Description map[string]string    `json:"description,omitempty"`
	File        map[string]assetFile `json:"file"`
}

// assetResource is one asset as returned by the management API.
type assetResource struct {
	Sys    sys         `json:"sys"`
	Fields assetFields `json:"fields"`
}

// entryResource is one entry as returned by the management API.
type entryResource struct {
	Sys    sys            `json:"sys"`
	Fields map[string]any `json:"fields"`
}

// contentTypeResource identifies one content type.
type contentTypeResource struct {
	Sys  sys    `json:"sys"`
	Name string `json:"name"`
}

// localeResource identifies one environment locale.
type localeResource struct {
	Code    string `json:"code"`
	Default bool   `json:"default"`
}

// Collection envelopes for list endpoints.
type (
	assetCollection struct {
		Total int             `json:"total"`
		Items []assetResource `json:"items"`
	}
	contentTypeCollection struct {
		Total int                   `json:"total"`
		Items []contentTypeResource `json:"items"`
	}
	localeCollection struct {
		Total int              `json:"total"`
		Items []localeResource `json:"items"`
	}
)

// apiErrorBody is the error payload shape of the management API.
type apiErrorBody struct {
	Message string `json:"message"`
	Sys     struct {
		ID string `json:"id"`
	} `json:"sys"`
}
