package sink

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formsteps/pkg/contract"
	"github.com/goliatone/go-formsteps/pkg/transport/webhook"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Response is the JSON body written for every POST.
type Response struct {
	Received bool             `json:"received"`
	ID       string           `json:"id,omitempty"`
	Error    string           `json:"error,omitempty"`
	Issues   []contract.Issue `json:"issues,omitempty"`
}

// Handler builds a net/http handler with default options plus any overrides.
// It is an alias of NewHandler to match the recommended component API surface.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		payload, err := decodePayload(io.LimitReader(r.Body, opts.MaxBodyBytes+1), opts.MaxBodyBytes)
		if err != nil {
			opts.Logger.Debug("sink rejected body", zap.Error(err))
			writeJSON(w, http.StatusBadRequest, Response{Error: err.Error()})
			return
		}

		if opts.Schema != nil {
			if result := contract.Validate(opts.Schema, payload); !result.Valid {
				opts.Logger.Info("sink payload failed contract",
					zap.Int("issues", len(result.Issues)),
				)
				writeJSON(w, http.StatusUnprocessableEntity, Response{Error: "payload does not match contract", Issues: result.Issues})
				return
			}
		}

		id := strings.TrimSpace(r.Header.Get(webhook.SubmissionIDHeader))
		if id == "" {
			id = opts.IDGenerator()
		}
		receipt := Receipt{ID: id, Payload: payload, ReceivedAt: opts.Now()}

		if opts.OnReceive != nil {
			if err := opts.OnReceive(r.Context(), receipt); err != nil {
				opts.Logger.Warn("sink receive hook failed", zap.String("id", id), zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, Response{ID: id, Error: http.StatusText(http.StatusInternalServerError)})
				return
			}
		}

		opts.Logger.Info("sink received submission",
			zap.String("id", id),
			zap.Int("fields", len(payload)),
		)
		writeJSON(w, http.StatusOK, Response{Received: true, ID: id})
	})
}

var (
	errBodyTooLarge = errors.New("request body too large")
	errNotObject    = errors.New("body must be a JSON object of strings")
)

func decodePayload(body io.Reader, limit int64) (map[string]string, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > limit {
		return nil, errBodyTooLarge
	}
	var payload map[string]string
	if err := json.Unmarshal(raw, &payload); err != nil || payload == nil {
		return nil, errNotObject
	}
	return payload, nil
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(body)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
