package mistral

// OCRResponse is the document-level OCR result: ordered pages plus usage
// accounting. Page order follows document page order.
type OCRResponse struct {
	Pages     []Page    `json:"pages"`
	Model     string    `json:"model"`
	UsageInfo UsageInfo `json:"usage_info"`
}

// Page holds one page's Markdown body and its extracted images.
type Page struct {
	Index      int        `json:"index"`
	Markdown   string     `json:"markdown"`
	Images     []Image    `json:"images"`
	Dimensions Dimensions `json:"dimensions"`
}

// Image is an extracted figure: its identifier as referenced from the page
// Markdown, its position on the page, and its base64-encoded payload
// (populated when include_image_base64 is requested).
type Image struct {
	ID           string `json:"id"`
	TopLeftX     int    `json:"top_left_x"`
	TopLeftY     int    `json:"top_left_y"`
	BottomRightX int    `json:"bottom_right_x"`
	BottomRightY int    `json:"bottom_right_y"`
	ImageBase64  string `json:"image_base64"`
}

// Dimensions describes the rendered page size in pixels at the given DPI.
type Dimensions struct {
	DPI    int `json:"dpi"`
	Height int `json:"height"`
	Width  int `json:"width"`
}

// UsageInfo reports what the service billed for the request.
type UsageInfo struct {
	PagesProcessed int  `json:"pages_processed"`
	DocSizeBytes   *int `json:"doc_size_bytes"`
}

// UploadResponse describes a file stored on the service.
type UploadResponse struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Filename  string `json:"filename"`
	Purpose   string `json:"purpose"`
	CreatedAt int64  `json:"created_at"`
}

// SignedURLResponse carries the short-lived retrieval link issued for an
// uploaded file.
type SignedURLResponse struct {
	URL       string `json:"url"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
}

// ocrRequest is the processing request body.
type ocrRequest struct {
	Model              string      `json:"model"`
	Document           ocrDocument `json:"document"`
	IncludeImageBase64 bool        `json:"include_image_base64"`
}

// ocrDocument points the service at the document to process.
type ocrDocument struct {
	Type        string `json:"type"`
	DocumentURL string `json:"document_url"`
}

// apiError is the service's failure response body.
type apiError struct {
	Message string `json:"message"`
}
