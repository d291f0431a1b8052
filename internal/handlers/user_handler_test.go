package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stianfs/fitness-app/internal/models"
	"github.com/stianfs/fitness-app/internal/repository"
)

type stubUserProfileStore struct {
	user *models.User
	err  error

	lastUserID         string
	lastUpdate         repository.UpdateUserInput
	lastMembershipType string
}

func (s *stubUserProfileStore) UpdatePartial(_ context.Context, id string, input repository.UpdateUserInput) (*models.User, error) {
	s.lastUserID = id
	s.lastUpdate = input
	return s.user, s.err
}

func (s *stubUserProfileStore) UpdateMembership(_ context.Context, id string, membershipType string) (*models.User, error) {
	s.lastUserID = id
	s.lastMembershipType = membershipType
	return s.user, s.err
}

func newUserApp(store *stubUserProfileStore) *fiber.App {
	handler := &UserHandler{userRepo: store}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "u1")
		return c.Next()
	})
	app.Put("/api/users/me", handler.UpdateProfile)
	app.Put("/api/users/membership", handler.UpdateMembership)
	return app
}

func TestUpdateProfileChangesDisplayName(t *testing.T) {
	displayName := "Kari"
	store := &stubUserProfileStore{
		user: &models.User{ID: "u1", Email: "kari@example.com", DisplayName: &displayName},
	}
	app := newUserApp(store)

	req := httptest.NewRequest(http.MethodPut, "/api/users/me", strings.NewReader(
		`{"displayName":"Kari"}`,
	))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.lastUserID != "u1" {
		t.Fatalf("expected update for u1, got %q", store.lastUserID)
	}
	if store.lastUpdate.DisplayName == nil || *store.lastUpdate.DisplayName != "Kari" {
		t.Fatalf("unexpected update input: %+v", store.lastUpdate)
	}

	var body struct {
		User models.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.User.DisplayName == nil || *body.User.DisplayName != "Kari" {
		t.Fatalf("unexpected user: %+v", body.User)
	}
}

func TestUpdateProfileRejectsBlankDisplayName(t *testing.T) {
	store := &stubUserProfileStore{}
	app := newUserApp(store)

	req := httptest.NewRequest(http.MethodPut, "/api/users/me", strings.NewReader(
		`{"displayName":"   "}`,
	))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if store.lastUserID != "" {
		t.Fatalf("store must not be called on invalid input")
	}
}

func TestUpdateMembershipValidatesType(t *testing.T) {
	store := &stubUserProfileStore{
		user: &models.User{ID: "u1", MembershipType: models.MembershipPremium},
	}
	app := newUserApp(store)

	req := httptest.NewRequest(http.MethodPut, "/api/users/membership", strings.NewReader(
		`{"membershipType":"gold"}`,
	))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown membership type, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/users/membership", strings.NewReader(
		`{"membershipType":"premium"}`,
	))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.lastMembershipType != "premium" {
		t.Fatalf("expected premium upgrade, got %q", store.lastMembershipType)
	}
}
