package utils

import (
	"net/url"
	"testing"
	"time"
)

func parseQuery(t *testing.T, link string) (path string, q url.Values) {
	t.Helper()
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse signed link: %v", err)
	}
	return u.Path, u.Query()
}

func TestLinkSigner_RoundTrip(t *testing.T) {
	s := NewLinkSigner("https://charityhub.test", "signer-secret")
	link := s.Sign("/v1/account/email/verify", time.Now().Add(time.Hour), url.Values{
		"user":  {"42"},
		"token": {"deadbeef"},
	})
	path, q := parseQuery(t, link)
	if path != "/v1/account/email/verify" {
		t.Fatalf("unexpected path %q", path)
	}
	if !s.Verify(path, q) {
		t.Fatal("freshly signed link did not verify")
	}
}

func TestLinkSigner_TamperedParam(t *testing.T) {
	s := NewLinkSigner("https://charityhub.test", "signer-secret")
	link := s.Sign("/v1/account/email/verify", time.Now().Add(time.Hour), url.Values{
		"user": {"42"}, "token": {"deadbeef"},
	})
	path, q := parseQuery(t, link)
	q.Set("user", "43") // point the link at another account
	if s.Verify(path, q) {
		t.Fatal("tampered link verified")
	}
}

func TestLinkSigner_Expired(t *testing.T) {
	s := NewLinkSigner("https://charityhub.test", "signer-secret")
	link := s.Sign("/v1/storage/doc.pdf", time.Now().Add(-time.Minute), url.Values{})
	path, q := parseQuery(t, link)
	if s.Verify(path, q) {
		t.Fatal("expired link verified")
	}
}

func TestLinkSigner_MissingSignature(t *testing.T) {
	s := NewLinkSigner("https://charityhub.test", "signer-secret")
	q := url.Values{"expires": {"9999999999"}}
	if s.Verify("/v1/storage/doc.pdf", q) {
		t.Fatal("link without signature verified")
	}
}

func TestLinkSigner_WrongSecret(t *testing.T) {
	a := NewLinkSigner("https://charityhub.test", "secret-a")
	b := NewLinkSigner("https://charityhub.test", "secret-b")
	link := a.Sign("/v1/storage/doc.pdf", time.Now().Add(time.Hour), url.Values{})
	path, q := parseQuery(t, link)
	if b.Verify(path, q) {
		t.Fatal("link signed with a different secret verified")
	}
}
