package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/klwxsrx/storefront-client/internal/session/app/refresh"
	"github.com/klwxsrx/storefront-client/internal/session/domain"
	sessionhttp "github.com/klwxsrx/storefront-client/internal/session/infra/http"
	"github.com/klwxsrx/storefront-client/internal/session/infra/memory"
	"github.com/klwxsrx/storefront-client/pkg/event"
	pkghttp "github.com/klwxsrx/storefront-client/pkg/http"
	"github.com/klwxsrx/storefront-client/pkg/log"
	"github.com/klwxsrx/storefront-client/pkg/metric"
)

const (
	validPassword = "Secret123"
	refreshCookie = "r1"
	takenEmail    = "taken@b.co"
)

var startTime = time.Unix(1_700_000_000, 0)

// fakeOrigin plays the auth origin: /auth/* endpoints plus one bearer protected /api/orders.
type fakeOrigin struct {
	server *httptest.Server

	mu            sync.Mutex
	validToken    string
	nextToken     string
	refreshOK     bool
	rotate        bool
	refreshCalls  int
	apiCalls      int
	lastAPIHeader http.Header
}

func newFakeOrigin(t *testing.T) *fakeOrigin {
	t.Helper()

	o := &fakeOrigin{
		validToken: tokenExpiringAt(t, startTime.Add(time.Hour)),
		nextToken:  tokenExpiringAt(t, startTime.Add(2*time.Hour)),
		refreshOK:  true,
		rotate:     true,
	}

	router := mux.NewRouter()
	router.HandleFunc("/auth/login", o.login).Methods(http.MethodPost)
	router.HandleFunc("/auth/register", o.register).Methods(http.MethodPost)
	router.HandleFunc("/auth/refresh", o.refresh).Methods(http.MethodPost)
	router.HandleFunc("/api/orders", o.orders).Methods(http.MethodGet, http.MethodPost)

	o.server = httptest.NewServer(router)
	t.Cleanup(o.server.Close)

	return o
}

func (o *fakeOrigin) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Email == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if in.Password != validPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}

	o.mu.Lock()
	token := o.validToken
	o.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: refreshCookie, Path: "/", HttpOnly: true})
	writeJSON(w, http.StatusOK, map[string]string{"accessToken": token})
}

func (o *fakeOrigin) register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Username == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if in.Email == takenEmail {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("Email already registered\n"))
		return
	}

	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte("created"))
}

func (o *fakeOrigin) refresh(w http.ResponseWriter, r *http.Request) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.refreshCalls++

	cookie, err := r.Cookie("refresh_token")
	if err != nil || cookie.Value != refreshCookie || !o.refreshOK {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "refresh token expired"})
		return
	}

	if o.rotate {
		o.validToken = o.nextToken
	}
	writeJSON(w, http.StatusOK, map[string]string{"accessToken": o.nextToken})
}

func (o *fakeOrigin) orders(w http.ResponseWriter, r *http.Request) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.apiCalls++
	o.lastAPIHeader = r.Header.Clone()

	if r.Header.Get("Authorization") != "Bearer "+o.validToken {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, []string{"order-1"})
}

func (o *fakeOrigin) configure(f func(o *fakeOrigin)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	f(o)
}

func (o *fakeOrigin) currentToken() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.validToken
}

func (o *fakeOrigin) lastHeader() http.Header {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastAPIHeader
}

func (o *fakeOrigin) stats() (refreshCalls, apiCalls int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.refreshCalls, o.apiCalls
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func tokenExpiringAt(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": expiresAt.Unix()}).
		SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

type session struct {
	storage   domain.Storage
	store     domain.SessionStore
	jar       *sessionhttp.CookieJar
	client    pkghttp.Client
	scheduler *refresh.Scheduler
	events    *eventRecorder
}

func newSession(t *testing.T, origin *fakeOrigin) *session {
	t.Helper()

	storage := memory.NewStorage()
	store := domain.NewSessionStore(storage)

	jar, err := sessionhttp.NewCookieJar(context.Background(), storage, log.NewStub(), origin.server.URL)
	require.NoError(t, err)

	client := pkghttp.NewClient(pkghttp.WithBaseURL(origin.server.URL), pkghttp.WithCookieJar(jar))
	events := &eventRecorder{}
	scheduler := refresh.NewScheduler(
		sessionhttp.NewAuthAPI(client),
		store,
		events.dispatcher(),
		clockwork.NewFakeClockAt(startTime),
		metric.NewStub(),
		log.NewStub(),
	)
	t.Cleanup(scheduler.Stop)

	return &session{
		storage:   storage,
		store:     store,
		jar:       jar,
		client:    client,
		scheduler: scheduler,
		events:    events,
	}
}

type eventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *eventRecorder) dispatcher() event.Dispatcher {
	record := func(_ context.Context, evt event.Event) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, evt)
		return nil
	}

	return event.NewDispatcher(map[string]event.Handler{
		domain.EventTypeTokenRefreshed: record,
		domain.EventTypeSessionExpired: record,
	})
}

func (r *eventRecorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]string, 0, len(r.events))
	for _, evt := range r.events {
		result = append(result, evt.Type())
	}
	return result
}
