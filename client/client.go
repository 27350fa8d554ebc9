// Package client is a JSON/HTTP client for the evaluation API, used by the
// flow controller as its Submitter.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/tathmini/core/evaluation"
	"github.com/trezcool/tathmini/core/school"
	"github.com/trezcool/tathmini/core/session"
)

var _ session.Submitter = (*Client)(nil)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Login authenticates and stores the bearer token for subsequent calls.
func (c *Client) Login(username, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(http.MethodPost, "/api/users/login", body, &resp); err != nil {
		return errors.Wrap(err, "logging in")
	}
	c.token = resp.Token
	return nil
}

func (c *Client) Classes() ([]school.Class, error) {
	var classes []school.Class
	err := c.do(http.MethodGet, "/api/classes", nil, &classes)
	return classes, errors.Wrap(err, "fetching classes")
}

func (c *Client) Subjects() ([]school.Subject, error) {
	var subjects []school.Subject
	err := c.do(http.MethodGet, "/api/subjects", nil, &subjects)
	return subjects, errors.Wrap(err, "fetching subjects")
}

func (c *Client) Students() ([]school.Student, error) {
	var students []school.Student
	err := c.do(http.MethodGet, "/api/students", nil, &students)
	return students, errors.Wrap(err, "fetching students")
}

func (c *Client) StudentsByClass(classID int) ([]school.Student, error) {
	var students []school.Student
	err := c.do(http.MethodGet, fmt.Sprintf("/api/students/class/%d", classID), nil, &students)
	return students, errors.Wrap(err, "fetching students by class")
}

func (c *Client) Evaluations() ([]evaluation.Evaluation, error) {
	var evals []evaluation.Evaluation
	err := c.do(http.MethodGet, "/api/evaluations", nil, &evals)
	return evals, errors.Wrap(err, "fetching evaluations")
}

func (c *Client) EvaluationsByClass(classID int) ([]evaluation.Evaluation, error) {
	var evals []evaluation.Evaluation
	err := c.do(http.MethodGet, fmt.Sprintf("/api/evaluations/class/%d", classID), nil, &evals)
	return evals, errors.Wrap(err, "fetching evaluations by class")
}

func (c *Client) EvaluationsBySubject(subjectID int) ([]evaluation.Evaluation, error) {
	var evals []evaluation.Evaluation
	err := c.do(http.MethodGet, fmt.Sprintf("/api/evaluations/subject/%d", subjectID), nil, &evals)
	return evals, errors.Wrap(err, "fetching evaluations by subject")
}

func (c *Client) EvaluationsByStudent(studentID int) ([]evaluation.Evaluation, error) {
	var evals []evaluation.Evaluation
	err := c.do(http.MethodGet, fmt.Sprintf("/api/evaluations/student/%d", studentID), nil, &evals)
	return evals, errors.Wrap(err, "fetching evaluations by student")
}

// SubmitEvaluation implements session.Submitter.
func (c *Client) SubmitEvaluation(ne evaluation.NewEvaluation) (evaluation.Evaluation, error) {
	var ev evaluation.Evaluation
	err := c.do(http.MethodPost, "/api/evaluations", ne, &ev)
	return ev, errors.Wrap(err, "submitting evaluation")
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

func (c *Client) do(method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return errors.Wrap(err, "encoding request body")
		}
	}
	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "sending request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "decoding response body")
		}
	}
	return nil
}
