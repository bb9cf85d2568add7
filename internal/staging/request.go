package staging

import (
	"context"
	"fmt"
)

// Actions accepted over the native-messaging channel.
const (
	ActionPrepareFile = "prepareFile"
	ActionCleanupFile = "cleanupFile"
)

// Request is a file-staging request received from the messaging
// channel. Which optional fields apply depends on the action.
type Request struct {
	Action         string `json:"action"`
	FileURL        string `json:"fileUrl,omitempty"`
	EncodedPayload string `json:"encodedPayload,omitempty"`
	FileName       string `json:"fileName,omitempty"`
	FilePath       string `json:"filePath,omitempty"`
	SHA256         string `json:"sha256,omitempty"`
	SignatureURL   string `json:"signatureUrl,omitempty"`
}

// Response is the structured result sent back over the channel. Error
// carries a message only when Success is false.
type Response struct {
	Success   bool   `json:"success"`
	FilePath  string `json:"filePath,omitempty"`
	FileName  string `json:"fileName,omitempty"`
	SizeBytes int64  `json:"sizeBytes,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Handler dispatches staging requests onto a Stager.
type Handler struct {
	stager *Stager
}

// NewHandler creates a request handler backed by the given stager.
func NewHandler(stager *Stager) *Handler {
	return &Handler{stager: stager}
}

// Handle executes one request. Every internal failure, panics
// included, converts to a {success:false, error} response; raw errors
// never escape to the messaging channel.
func (h *Handler) Handle(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = failure(fmt.Sprintf("internal error: %v", r))
		}
	}()

	switch req.Action {
	case ActionPrepareFile:
		return h.prepare(ctx, req)
	case ActionCleanupFile:
		return h.cleanup(req)
	default:
		return failure(fmt.Sprintf("unknown action: %q", req.Action))
	}
}

func (h *Handler) prepare(ctx context.Context, req Request) Response {
	source, err := sourceFromRequest(req)
	if err != nil {
		return failure(err.Error())
	}

	staged, err := h.stager.Stage(ctx, source)
	if err != nil {
		return failure(err.Error())
	}

	return Response{
		Success:   true,
		FilePath:  staged.FilePath,
		FileName:  staged.FileName,
		SizeBytes: staged.SizeBytes,
	}
}

func (h *Handler) cleanup(req Request) Response {
	if req.FilePath == "" {
		return failure("cleanupFile requires filePath")
	}
	if err := h.stager.Cleanup(req.FilePath); err != nil {
		return failure(err.Error())
	}
	return Response{Success: true}
}

// sourceFromRequest resolves the request's payload union into a
// tagged source. Precedence when several fields are set: URL, then
// inline payload, then existing path.
func sourceFromRequest(req Request) (Source, error) {
	switch {
	case req.FileURL != "":
		return URLSource{
			URL:          req.FileURL,
			SHA256:       req.SHA256,
			SignatureURL: req.SignatureURL,
		}, nil
	case req.EncodedPayload != "":
		return PayloadSource{Encoded: req.EncodedPayload, Name: req.FileName}, nil
	case req.FilePath != "":
		return PathSource{Path: req.FilePath}, nil
	default:
		return nil, fmt.Errorf("prepareFile requires fileUrl, encodedPayload, or filePath")
	}
}

func failure(msg string) Response {
	return Response{Success: false, Error: msg}
}
