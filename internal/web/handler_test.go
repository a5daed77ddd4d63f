package web

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizd/internal/bank"
	"github.com/quizforge/quizd/internal/quiz"
	"github.com/quizforge/quizd/internal/session"
)

const testBank = `[
  {
    "question_number": "101",
    "question_text": "Which port does SSH use by default?",
    "options": {"A": "21", "B": "22", "C": "80", "D": "443"},
    "correct_answer": "B",
    "explanation": "SSH listens on TCP 22."
  },
  {
    "question_text": "Which of the following are hashing algorithms? (Choose two.)",
    "options": {"A": "SHA-256", "B": "AES", "C": "MD5", "D": "RSA"},
    "correct_answer": "A C"
  },
  {
    "question_text": "Configure the firewall as described.",
    "is_simulation": true,
    "simulation_details": "Drag the rules into the correct order."
  }
]`

type testApp struct {
	srv    *httptest.Server
	client *http.Client
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	b, err := bank.Parse([]byte(testBank))
	require.NoError(t, err)

	h := New(
		quiz.New(b),
		session.NewMemoryStore(),
		session.NewCodec("test-secret", time.Hour),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		Options{Title: "Test Quiz", DefaultTheme: "default-theme", CORSOrigins: []string{"*"}},
	)
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testApp{srv: srv, client: &http.Client{Jar: jar}}
}

func (a *testApp) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.Get(a.srv.URL + path)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.PostForm(a.srv.URL+path, form)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

func (a *testApp) postJSON(t *testing.T, path string, v any, out any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(v)
	require.NoError(t, err)
	resp, err := a.client.Post(a.srv.URL+path, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestPage_FirstVisit(t *testing.T) {
	app := newTestApp(t)
	resp, body := app.get(t, "/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Which port does SSH use by default?")
	assert.Contains(t, body, "Question 1 of 3")
	assert.Contains(t, body, "Current Score: 0 / 3")

	u, _ := url.Parse(app.srv.URL)
	var found bool
	for _, ck := range app.client.Jar.Cookies(u) {
		if ck.Name == session.CookieName {
			found = true
		}
	}
	assert.True(t, found, "first visit must mint a session cookie")
}

func TestSubmitFlow(t *testing.T) {
	app := newTestApp(t)
	app.get(t, "/")

	_, body := app.postForm(t, "/submit", url.Values{
		"question_index": {"0"},
		"answer":         {"B"},
	})
	assert.Contains(t, body, "Correct!")
	assert.Contains(t, body, "SSH listens on TCP 22.")
	assert.Contains(t, body, "Current Score: 1 / 3")

	// feedback is reconstructed on a plain reload
	_, body = app.get(t, "/")
	assert.Contains(t, body, "Correct!")

	// resubmission is a no-op; the first result stays
	_, body = app.postForm(t, "/submit", url.Values{
		"question_index": {"0"},
		"answer":         {"A"},
	})
	assert.Contains(t, body, "Correct!")
	assert.Contains(t, body, "Current Score: 1 / 3")
}

func TestSubmit_IncorrectShowsCorrectAnswer(t *testing.T) {
	app := newTestApp(t)
	app.get(t, "/")

	_, body := app.postForm(t, "/submit", url.Values{
		"question_index": {"0"},
		"answer":         {"A"},
	})
	assert.Contains(t, body, "Incorrect.")
	assert.Contains(t, body, "Correct answer was")
}

func TestNavigationAndResults(t *testing.T) {
	app := newTestApp(t)
	app.get(t, "/")

	_, body := app.get(t, "/?action=next")
	assert.Contains(t, body, "Question 2 of 3")

	_, body = app.get(t, "/?action=prev")
	assert.Contains(t, body, "Question 1 of 3")

	app.get(t, "/?action=next")
	_, body = app.get(t, "/?action=next")
	assert.Contains(t, body, "Simulation 3 of 3")
	assert.Contains(t, body, "Drag the rules into the correct order.")
	assert.Contains(t, body, "View Results")

	_, body = app.get(t, "/?action=next")
	assert.Contains(t, body, "Quiz Completed!")
	assert.Contains(t, body, "(Simulation - Skipped)")
	assert.Contains(t, body, "(Not Answered)")

	// next at the results position stays on the results page
	_, body = app.get(t, "/?action=next")
	assert.Contains(t, body, "Quiz Completed!")
}

func TestReset(t *testing.T) {
	app := newTestApp(t)
	app.get(t, "/")
	app.postForm(t, "/submit", url.Values{"question_index": {"0"}, "answer": {"B"}})
	app.get(t, "/?action=next")

	_, body := app.get(t, "/?action=reset")
	assert.Contains(t, body, "Question 1 of 3")
	assert.Contains(t, body, "Current Score: 0 / 3")
}

func TestThemeSwitch(t *testing.T) {
	app := newTestApp(t)

	_, body := app.get(t, "/?theme=hacker-theme")
	assert.Contains(t, body, `class="hacker-theme"`)

	// unknown themes do not change the current selection
	_, body = app.get(t, "/?theme=nonsense")
	assert.Contains(t, body, `class="hacker-theme"`)
}

func TestAPI_SessionFlow(t *testing.T) {
	app := newTestApp(t)

	var view struct {
		Current  int  `json:"current"`
		Score    int  `json:"score"`
		Total    int  `json:"total"`
		Finished bool `json:"finished"`
		Question *struct {
			Text  string `json:"text"`
			Multi bool   `json:"multi"`
		} `json:"question"`
	}
	resp, err := app.client.Get(app.srv.URL + "/api/session")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	resp.Body.Close()
	assert.Equal(t, 3, view.Total)
	require.NotNil(t, view.Question)
	assert.False(t, view.Question.Multi)

	type answerResp struct {
		Accepted bool           `json:"accepted"`
		Feedback *quiz.Feedback `json:"feedback"`
		Score    int            `json:"score"`
	}
	var ans answerResp
	app.postJSON(t, "/api/session/answer", map[string]any{"index": 0, "selection": []string{"B"}}, &ans)
	require.True(t, ans.Accepted)
	assert.True(t, ans.Feedback.Correct)
	assert.Equal(t, 1, ans.Score)

	// duplicate submission is rejected without feedback
	var dup answerResp
	app.postJSON(t, "/api/session/answer", map[string]any{"index": 0, "selection": []string{"A"}}, &dup)
	assert.False(t, dup.Accepted)
	assert.Nil(t, dup.Feedback)

	// summary is only served at the results position
	resp, err = app.client.Get(app.srv.URL + "/api/session/summary")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	for i := 0; i < 3; i++ {
		app.postJSON(t, "/api/session/navigate", map[string]string{"direction": "next"}, nil)
	}
	var sum quiz.Summary
	resp, err = app.client.Get(app.srv.URL + "/api/session/summary")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sum))
	resp.Body.Close()
	assert.Equal(t, 1, sum.Score)
	assert.Equal(t, 33.3, sum.Percentage)
	require.Len(t, sum.Items, 3)
}

func TestAPI_QuestionNeverLeaksAnswerKey(t *testing.T) {
	app := newTestApp(t)
	resp, err := app.client.Get(app.srv.URL + "/api/session")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	assert.False(t, strings.Contains(string(body), "correct_answer"),
		"unanswered question payload must not contain the answer key")
	assert.False(t, strings.Contains(string(body), `"keys"`))
}

func TestAPI_BadNavigate(t *testing.T) {
	app := newTestApp(t)
	resp := app.postJSON(t, "/api/session/navigate", map[string]string{"direction": "sideways"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
