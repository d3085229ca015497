package services

import "testing"

func TestSessionLifecycle(t *testing.T) {
	ss := NewSessionService()

	token := ss.CreateSession(7, "alex@campus.edu")
	if token == "" {
		t.Fatal("expected a non-empty session token")
	}

	identity, ok := ss.Resolve(token)
	if !ok {
		t.Fatal("expected the token to resolve")
	}
	if identity.UserID != 7 || identity.Email != "alex@campus.edu" {
		t.Fatalf("unexpected identity %+v", identity)
	}

	ss.Revoke(token)
	if _, ok := ss.Resolve(token); ok {
		t.Fatal("revoked token must not resolve")
	}
}

func TestResolveUnknownToken(t *testing.T) {
	ss := NewSessionService()

	if _, ok := ss.Resolve("nope"); ok {
		t.Fatal("unknown token must not resolve")
	}
	if _, ok := ss.Resolve(""); ok {
		t.Fatal("empty token must not resolve")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	ss := NewSessionService()

	first := ss.CreateSession(1, "a@campus.edu")
	second := ss.CreateSession(1, "a@campus.edu")
	if first == second {
		t.Fatal("each login must mint a distinct token")
	}

	ss.Revoke(first)
	if _, ok := ss.Resolve(second); !ok {
		t.Fatal("revoking one session must not revoke the other")
	}
}
