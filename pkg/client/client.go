// Package client is a typed facade over the fitness-app HTTP API. It keeps
// hold of the session token issued at sign-in, attaches it as a bearer header
// on every call, and normalizes the API's {"error": ...} bodies into Go
// errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stianfs/fitness-app/internal/models"
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken installs a session token obtained elsewhere, e.g. from storage.
func (c *Client) SetToken(token string) {
	c.token = token
}

type SignUpInput struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	DisplayName *string `json:"displayName,omitempty"`
}

type signUpResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
}

func (c *Client) SignUp(ctx context.Context, input SignUpInput) (string, error) {
	var resp signUpResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", input, &resp); err != nil {
		return "", err
	}
	return resp.UserID, nil
}

type signInResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// SignIn verifies credentials and stores the issued token on the client for
// all subsequent calls.
func (c *Client) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp signInResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signin", body, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp.User, nil
}

type CreateWorkoutInput struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Duration int     `json:"duration"`
	Calories *int    `json:"calories,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

type UpdateWorkoutInput struct {
	Name     *string `json:"name,omitempty"`
	Type     *string `json:"type,omitempty"`
	Duration *int    `json:"duration,omitempty"`
	Calories *int    `json:"calories,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

type createWorkoutResponse struct {
	Success   bool   `json:"success"`
	WorkoutID string `json:"workoutId"`
}

type listWorkoutsResponse struct {
	Workouts []models.Workout `json:"workouts"`
}

func (c *Client) CreateWorkout(ctx context.Context, input CreateWorkoutInput) (string, error) {
	var resp createWorkoutResponse
	if err := c.do(ctx, http.MethodPost, "/api/workouts", input, &resp); err != nil {
		return "", err
	}
	return resp.WorkoutID, nil
}

func (c *Client) Workouts(ctx context.Context) ([]models.Workout, error) {
	var resp listWorkoutsResponse
	if err := c.do(ctx, http.MethodGet, "/api/workouts", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Workouts, nil
}

func (c *Client) Workout(ctx context.Context, id string) (*models.Workout, error) {
	var workout models.Workout
	if err := c.do(ctx, http.MethodGet, "/api/workouts/"+id, nil, &workout); err != nil {
		return nil, err
	}
	return &workout, nil
}

func (c *Client) UpdateWorkout(ctx context.Context, id string, input UpdateWorkoutInput) error {
	return c.do(ctx, http.MethodPut, "/api/workouts/"+id, input, nil)
}

func (c *Client) DeleteWorkout(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/workouts/"+id, nil, nil)
}

func (c *Client) WorkoutStats(ctx context.Context) (*models.WorkoutStats, error) {
	var stats models.WorkoutStats
	if err := c.do(ctx, http.MethodGet, "/api/workouts/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: "Request failed"}
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
