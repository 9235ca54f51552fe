package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/cometcontrol/comet-backend/pkg/errors"
	"github.com/cometcontrol/comet-backend/pkg/types"
)

func TestDecodeJSONBodyMalformed(t *testing.T) {
	req := httptest.NewRequest("POST", "/contact", strings.NewReader("{not json"))

	var msg types.ContactMessage
	err := DecodeJSONBody(req, &msg)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeMalformed {
		t.Fatalf("expected MALFORMED_REQUEST, got %v", err)
	}
}

func TestDecodeJSONBodyValid(t *testing.T) {
	body := `{"name":"Ada","email":"ada@x.com","subject":"Inquiry","message":"Need pricing"}`
	req := httptest.NewRequest("POST", "/contact", strings.NewReader(body))

	var msg types.ContactMessage
	if err := DecodeJSONBody(req, &msg); err != nil {
		t.Fatalf("DecodeJSONBody: %v", err)
	}
	if msg.Name != "Ada" || msg.Subject != "Inquiry" {
		t.Fatalf("unexpected decode result: %+v", msg)
	}
}

func TestDecodeJSONBodyDoesNotValidate(t *testing.T) {
	// Out-of-bounds values decode fine here; the validator owns semantics.
	body := `{"name":"A","email":"nope","subject":"x","message":"y"}`
	req := httptest.NewRequest("POST", "/contact", strings.NewReader(body))

	var msg types.ContactMessage
	if err := DecodeJSONBody(req, &msg); err != nil {
		t.Fatalf("expected decode to pass shape-only check, got %v", err)
	}
}
