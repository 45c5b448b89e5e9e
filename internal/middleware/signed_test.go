package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jarthurreyes30-tech/charityhub-api/internal/utils"
)

// runSigned sends a GET for target through VerifySignedLink and reports the
// resulting status code. The next handler answers 200.
func runSigned(t *testing.T, signer *utils.LinkSigner, target string) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := VerifySignedLink(signer)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec.Code
}

func TestVerifySignedLink_ValidLinkPasses(t *testing.T) {
	signer := utils.NewLinkSigner("", "signing-secret")
	link := signer.Sign("/v1/account/email/verify", time.Now().UTC().Add(time.Hour), url.Values{
		"user": {"7"}, "token": {"abc"},
	})
	if code := runSigned(t, signer, link); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
}

func TestVerifySignedLink_KeyWithReservedCharacters(t *testing.T) {
	signer := utils.NewLinkSigner("", "signing-secret")
	// A file key with a space and a plus sign must survive the escape /
	// decode round trip between signing and verification.
	key := "annual report+2025.pdf"
	link := signer.Sign("/v1/storage/"+url.PathEscape(key), time.Now().UTC().Add(time.Hour), nil)
	if code := runSigned(t, signer, link); code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for escaped key", code)
	}
}

func TestVerifySignedLink_TamperedQueryRejected(t *testing.T) {
	signer := utils.NewLinkSigner("", "signing-secret")
	link := signer.Sign("/v1/account/email/verify", time.Now().UTC().Add(time.Hour), url.Values{
		"user": {"7"}, "token": {"abc"},
	})
	if code := runSigned(t, signer, link+"&user=8"); code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 for tampered query", code)
	}
}

func TestVerifySignedLink_UnsignedRequestRejected(t *testing.T) {
	signer := utils.NewLinkSigner("", "signing-secret")
	if code := runSigned(t, signer, "/v1/storage/report.pdf"); code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 without a signature", code)
	}
}
