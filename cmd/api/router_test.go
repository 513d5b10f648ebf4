package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier-backend/internal/auth"
	"atelier-backend/internal/config"
	commentHandler "atelier-backend/internal/domains/comment/handler"
	commentRepo "atelier-backend/internal/domains/comment/repository"
	commentService "atelier-backend/internal/domains/comment/service"
	"atelier-backend/internal/domains/entry"
	entryHandler "atelier-backend/internal/domains/entry/handler"
	entryRepo "atelier-backend/internal/domains/entry/repository"
	entryService "atelier-backend/internal/domains/entry/service"
	"atelier-backend/internal/infrastructure/assistant"
	"atelier-backend/internal/shared/response"
	"atelier-backend/pkg/container"
	"atelier-backend/pkg/jwt"
)

const testSecret = "segredo-do-autor"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	entries := entryRepo.NewMemoryRepository()
	comments := commentRepo.NewMemoryRepository()

	commentSvc := commentService.NewCommentService(comments, entries)
	entrySvc := entryService.NewEntryService(entries, commentSvc)
	assistantSvc := assistant.NewGeminiService("", "", "", time.Second)

	tokens := jwt.NewManager("router-test-secret", time.Hour)
	verifier := auth.NewVerifier("", testSecret)

	app := &container.Container{
		Config: &config.Config{
			App: config.AppConfig{Name: "Atelier API", Environment: "test", Version: "test"},
		},
		JWTManager: tokens,
		Verifier:   verifier,

		EntryRepo:   entries,
		CommentRepo: comments,

		EntryService:     entrySvc,
		CommentService:   commentSvc,
		AssistantService: assistantSvc,

		EntryHandler:     entryHandler.NewHandler(entrySvc),
		CommentHandler:   commentHandler.NewHandler(commentSvc),
		AuthHandler:      auth.NewHandler(verifier, tokens),
		AssistantHandler: assistant.NewHandler(assistantSvc),
	}

	return SetupRouter(app)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *response.Error `json:"error"`
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()
	code, env := doRequest(t, router, http.MethodPost, "/api/auth/login", "", gin.H{"secret": testSecret})
	require.Equal(t, http.StatusOK, code)

	var resp auth.LoginResp
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func createEntry(t *testing.T, router *gin.Engine, token string, body gin.H) entry.EntryResp {
	t.Helper()
	code, env := doRequest(t, router, http.MethodPost, "/api/entries", token, body)
	require.Equal(t, http.StatusCreated, code)

	var resp entry.EntryResp
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	return resp
}

func TestHealthOnMemoryStore(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "memory", status["database"])
}

func TestLoginRejectsWrongSecret(t *testing.T) {
	router := newTestRouter(t)

	code, env := doRequest(t, router, http.MethodPost, "/api/auth/login", "", gin.H{"secret": "errado"})
	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

func TestCreateEntryRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	code, env := doRequest(t, router, http.MethodPost, "/api/entries", "", gin.H{
		"title":    "Sem sessão",
		"category": "Pensamento",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, env.Error)
}

func TestCreateAndFetchBySlug(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	created := createEntry(t, router, token, gin.H{
		"title":     "A Cidade e as Serras",
		"content":   "Um ensaio sobre o campo e a cidade.",
		"category":  "Escrita",
		"published": true,
	})
	assert.Equal(t, "a-cidade-e-as-serras", created.Slug)
	assert.Equal(t, entry.CategoryWriting, created.Category)

	code, env := doRequest(t, router, http.MethodGet, "/api/entries/"+created.Slug, "", nil)
	require.Equal(t, http.StatusOK, code)

	var fetched entry.EntryResp
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Title, fetched.Title)
}

func TestListHidesDraftsFromPublic(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	createEntry(t, router, token, gin.H{
		"title": "Publicado", "category": "Pensamento", "published": true,
	})
	createEntry(t, router, token, gin.H{
		"title": "Rascunho", "category": "Pensamento", "published": false,
	})

	code, env := doRequest(t, router, http.MethodGet, "/api/entries", "", nil)
	require.Equal(t, http.StatusOK, code)
	var public []entry.EntryResp
	require.NoError(t, json.Unmarshal(env.Data, &public))
	require.Len(t, public, 1)
	assert.Equal(t, "Publicado", public[0].Title)

	code, _ = doRequest(t, router, http.MethodGet, "/api/entries?all=true", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = doRequest(t, router, http.MethodGet, "/api/entries?all=true", token, nil)
	require.Equal(t, http.StatusOK, code)
	var all []entry.EntryResp
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 2)
}

func TestLikeEntryIsPublic(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	created := createEntry(t, router, token, gin.H{
		"title": "Curtidas", "category": "Pensamento", "published": true,
	})

	code, env := doRequest(t, router, http.MethodPost, "/api/entries/"+created.ID+"/like", "", nil)
	require.Equal(t, http.StatusOK, code)

	var liked entry.LikeResp
	require.NoError(t, json.Unmarshal(env.Data, &liked))
	assert.Equal(t, 1, liked.Likes)
}

func TestCommentFlow(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	created := createEntry(t, router, token, gin.H{
		"title": "Comentado", "category": "Pensamento", "published": true,
	})

	path := fmt.Sprintf("/api/entries/%s/comments", created.ID)
	code, _ := doRequest(t, router, http.MethodPost, path, "", gin.H{
		"authorName": "Leitora",
		"text":       "Belíssimo ensaio.",
	})
	require.Equal(t, http.StatusCreated, code)

	code, env := doRequest(t, router, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, code)

	var comments []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "Belíssimo ensaio.", comments[0]["text"])
	assert.NotEmpty(t, comments[0]["date"])
	assert.NotEmpty(t, comments[0]["displayDate"])
}

func TestUpdateKeepsSlug(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	created := createEntry(t, router, token, gin.H{
		"title": "Primeiro Nome", "category": "Pensamento", "published": true,
	})

	code, env := doRequest(t, router, http.MethodPut, "/api/entries/"+created.ID, token, gin.H{
		"title": "Nome Revisado",
	})
	require.Equal(t, http.StatusOK, code)

	var updated entry.EntryResp
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Nome Revisado", updated.Title)
	assert.Equal(t, created.Slug, updated.Slug)
}

func TestDeleteRequiresAuthAndRemovesEntry(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	created := createEntry(t, router, token, gin.H{
		"title": "Efêmero", "category": "Pensamento", "published": true,
	})

	code, _ := doRequest(t, router, http.MethodDelete, "/api/entries/"+created.ID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = doRequest(t, router, http.MethodDelete, "/api/entries/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, code)

	code, env := doRequest(t, router, http.MethodGet, "/api/entries/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ENTRY_001", env.Error.Code)
}

func TestAssistantRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	code, _ := doRequest(t, router, http.MethodPost, "/api/assistant/inspire", "", gin.H{"topic": "Escrita"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAssistantFallsBackWithoutAPIKey(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	code, env := doRequest(t, router, http.MethodPost, "/api/assistant/summarize", token, gin.H{
		"title": "Ensaio", "content": "Texto do ensaio.",
	})
	require.Equal(t, http.StatusOK, code)

	var resp struct {
		Summary string `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Contains(t, resp.Summary, "API Key")
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	router := newTestRouter(t)

	code, env := doRequest(t, router, http.MethodGet, "/api/nonexistent", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
