package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communityaid/internal/domain"
	"communityaid/internal/http/handlers"
	"communityaid/internal/infra"
	"communityaid/internal/middleware"
	"communityaid/internal/payment"
	"communityaid/internal/policy"
	"communityaid/internal/providers/mpesa"
	"communityaid/internal/resource"
	"communityaid/internal/storage"
	"communityaid/internal/testutil"
)

const secret = "router-test-secret"

type gatewayStub struct {
	calls int
	resp  *mpesa.PushResponse
	err   error
}

func (g *gatewayStub) STKPush(context.Context, mpesa.PushRequest) (*mpesa.PushResponse, error) {
	g.calls++
	return g.resp, g.err
}

type env struct {
	t             *testing.T
	handler       http.Handler
	users         *testutil.Users
	projects      *testutil.Projects
	donations     *testutil.Donations
	beneficiaries *testutil.MemStore[domain.Beneficiary]
	volunteers    *testutil.MemStore[domain.Volunteer]
	gateway       *gatewayStub
	metrics       *infra.Metrics

	admin, alice, bob domain.User
	project           domain.Project
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := zerolog.Nop()
	e := &env{
		t:             t,
		users:         testutil.NewUsers(),
		projects:      testutil.NewProjects(),
		donations:     testutil.NewDonations(),
		beneficiaries: testutil.NewBeneficiaries(),
		volunteers:    testutil.NewVolunteers(),
		gateway: &gatewayStub{resp: &mpesa.PushResponse{
			Status: 200,
			Body:   json.RawMessage(`{"invoice":{"invoice_id":"INV-9","state":"PENDING"}}`),
		}},
		metrics: infra.NewMetrics(),
	}
	hash, err := resource.HashPassword("correct horse")
	require.NoError(t, err)
	seeded := e.users.Seed(
		domain.User{Username: "admin", PasswordHash: hash, IsStaff: true, DateJoined: time.Now()},
		domain.User{Username: "alice", PasswordHash: hash, DateJoined: time.Now()},
		domain.User{Username: "bob", PasswordHash: hash, DateJoined: time.Now()},
	)
	e.admin, e.alice, e.bob = seeded[0], seeded[1], seeded[2]
	e.project = e.projects.Seed(domain.Project{
		ID: 7, Title: "Clean water", Description: "Boreholes", StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status: "active", CreatedBy: e.admin.ID,
	})[0]

	media, err := storage.NewFileStore(t.TempDir(), "http://media.test/media")
	require.NoError(t, err)

	app := &handlers.App{
		Projects:             resource.NewProjects(e.projects, logger),
		Donations:            resource.NewDonations(e.donations, e.projects, logger),
		Beneficiaries:        resource.NewBeneficiaries(e.beneficiaries, e.projects, logger),
		Volunteers:           resource.NewVolunteers(e.volunteers, e.projects, logger),
		UserAccounts:         resource.NewUsers(e.users, logger),
		BeneficiaryApprovals: resource.NewApprover(policy.KindBeneficiary, e.beneficiaries, logger, resource.StateApproved),
		VolunteerApprovals:   resource.NewApprover(policy.KindVolunteer, e.volunteers, logger, resource.StateApproved, resource.StateRejected),
		Users:                e.users,
		Payments:             payment.NewInitiator(e.projects, e.donations, e.gateway, e.metrics, logger),
		Media:                media,
		Logger:               logger,
		JWTSecret:            secret,
		TokenTTL:             time.Hour,
	}
	e.handler = NewRouter(app, Options{JWTSecret: secret, Metrics: e.metrics, Media: media.Handler()})
	return e
}

func (e *env) token(u domain.User) string {
	tok, err := middleware.SignToken(secret, u.ID, u.IsStaff, time.Hour)
	require.NoError(e.t, err)
	return tok
}

func (e *env) do(method, path string, as *domain.User, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+e.token(*as))
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestHealthIsPublic(t *testing.T) {
	e := newEnv(t)
	rr := e.do(http.MethodGet, "/v1/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestCollectionsRequireAuthentication(t *testing.T) {
	e := newEnv(t)
	for _, path := range []string{"/projects", "/donations", "/beneficiaries", "/volunteers", "/users", "/me"} {
		rr := e.do(http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}

func TestRegisterTokenMe(t *testing.T) {
	e := newEnv(t)

	rr := e.do(http.MethodPost, "/register", nil, map[string]string{"username": "carol", "email": "carol@example.org", "password": "long enough"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[map[string]any](t, rr)
	assert.Equal(t, "carol", created["username"])
	assert.Equal(t, false, created["is_staff"])
	assert.NotContains(t, rr.Body.String(), "password")

	rr = e.do(http.MethodPost, "/token", nil, map[string]string{"username": "carol", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = e.do(http.MethodPost, "/token", nil, map[string]string{"username": "carol", "password": "long enough"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	tok := decode[map[string]any](t, rr)["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/me/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	me := httptest.NewRecorder()
	e.handler.ServeHTTP(me, req)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, "carol", decode[map[string]any](t, me)["username"])
}

func TestBeneficiaryDeleteByNonStaffIsForbidden(t *testing.T) {
	e := newEnv(t)
	b := e.beneficiaries.Seed(domain.Beneficiary{ProjectID: e.project.ID, Name: "Amina", ContactInfo: "0700", Approved: true})[0]

	rr := e.do(http.MethodDelete, "/beneficiaries/"+itoa(b.ID), &e.alice, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), `"error":"forbidden"`)
	assert.Len(t, e.beneficiaries.All(), 1)
	assert.Zero(t, e.beneficiaries.Writes)

	rr = e.do(http.MethodDelete, "/beneficiaries/"+itoa(b.ID), &e.admin, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, e.beneficiaries.All())
}

func TestBeneficiaryCreateIsForcedUnapproved(t *testing.T) {
	e := newEnv(t)

	rr := e.do(http.MethodPost, "/beneficiaries/", &e.alice, map[string]any{"project": e.project.ID, "name": "Family K", "contact_info": "0711", "approved": true})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, false, decode[map[string]any](t, rr)["approved"])

	rr = e.do(http.MethodGet, "/beneficiaries", &e.bob, nil)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = e.do(http.MethodPost, "/beneficiaries/approve", &e.alice, map[string]any{"ids": []int64{1}})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = e.do(http.MethodPost, "/beneficiaries/approve", &e.admin, map[string]any{"ids": []int64{1, 1, 99}})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"updated":1}`, rr.Body.String())

	rr = e.do(http.MethodGet, "/beneficiaries", &e.bob, nil)
	assert.Len(t, decode[[]map[string]any](t, rr), 1)
}

func TestDonationAmountVisibleOnlyToStaff(t *testing.T) {
	e := newEnv(t)

	rr := e.do(http.MethodPost, "/donations", &e.alice, map[string]any{"project": e.project.ID, "amount": 1500})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[map[string]any](t, rr)
	assert.Nil(t, created["amount"])
	assert.Equal(t, float64(e.alice.ID), created["donor"])
	assert.Equal(t, "pending", created["status"])

	rr = e.do(http.MethodGet, "/donations", &e.bob, nil)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = e.do(http.MethodGet, "/donations/1", &e.bob, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = e.do(http.MethodGet, "/donations?project="+itoa(e.project.ID), &e.admin, nil)
	items := decode[[]map[string]any](t, rr)
	require.Len(t, items, 1)
	assert.Equal(t, float64(1500), items[0]["amount"])

	rr = e.do(http.MethodPatch, "/donations/1", &e.alice, map[string]any{"amount": 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, int64(1500), e.donations.All()[0].Amount)
}

func TestVolunteerBulkReject(t *testing.T) {
	e := newEnv(t)

	rr := e.do(http.MethodPost, "/volunteers", &e.bob, map[string]any{"project": e.project.ID, "role": "driver", "status": "approved"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "pending", decode[map[string]any](t, rr)["status"])

	rr = e.do(http.MethodPost, "/volunteers/reject", &e.admin, map[string]any{"ids": []int64{1}})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = e.do(http.MethodGet, "/volunteers?status=rejected", &e.bob, nil)
	items := decode[[]map[string]any](t, rr)
	require.Len(t, items, 1)
	assert.Equal(t, "rejected", items[0]["status"])

	rr = e.do(http.MethodGet, "/volunteers?status=bogus", &e.bob, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPromotionNeedsStaff(t *testing.T) {
	e := newEnv(t)

	rr := e.do(http.MethodPatch, "/users/"+itoa(e.alice.ID), &e.alice, map[string]any{"is_staff": true})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = e.do(http.MethodPatch, "/users/"+itoa(e.alice.ID), &e.alice, map[string]any{"first_name": "Alice"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = e.do(http.MethodGet, "/users/"+itoa(e.bob.ID), &e.alice, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = e.do(http.MethodPatch, "/users/"+itoa(e.alice.ID), &e.admin, map[string]any{"is_staff": true})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, decode[map[string]any](t, rr)["is_staff"])
}

func TestMpesaMissingPhone(t *testing.T) {
	e := newEnv(t)

	rr := e.do(http.MethodPost, "/donate/mpesa", &e.alice, map[string]any{"amount": 500, "projectId": e.project.ID})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"field":"phone"`)
	assert.Zero(t, e.gateway.calls)
	assert.Empty(t, e.donations.All())
}

func TestMpesaSuccessReturnsGatewayBody(t *testing.T) {
	e := newEnv(t)

	rr := e.do(http.MethodPost, "/donate/mpesa", &e.alice, map[string]any{"amount": "500", "phone": "0712345678", "projectId": 7})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, `{"invoice":{"invoice_id":"INV-9","state":"PENDING"}}`, rr.Body.String())
	require.Len(t, e.donations.All(), 1)
	assert.Equal(t, e.alice.ID, e.donations.All()[0].DonorID)

	rr = e.do(http.MethodPost, "/donate/mpesa", &e.alice, map[string]any{"amount": 500, "phone": "0712345678", "projectId": 404})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMpesaGatewayFailure(t *testing.T) {
	e := newEnv(t)
	e.gateway.resp = nil
	e.gateway.err = &domain.UpstreamError{Service: "mpesa", Details: "gateway status 503"}

	rr := e.do(http.MethodPost, "/donate/mpesa", &e.alice, map[string]any{"amount": 500, "phone": "0712345678", "projectId": 7})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decode[map[string]string](t, rr)
	assert.Equal(t, "upstream_error", body["error"])
	assert.Equal(t, "gateway status 503", body["details"])
	assert.Empty(t, e.donations.All())
}

func TestPhotoUpload(t *testing.T) {
	e := newEnv(t)

	var img bytes.Buffer
	canvas := image.NewRGBA(image.Rect(0, 0, 2, 2))
	canvas.Set(0, 0, color.White)
	require.NoError(t, png.Encode(&img, canvas))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("photo", "me.png")
	require.NoError(t, err)
	_, _ = part.Write(img.Bytes())
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/users/"+itoa(e.alice.ID)+"/photo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+e.token(e.alice))
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	url := decode[map[string]any](t, rr)["profile_photo"].(string)
	assert.True(t, strings.HasPrefix(url, "http://media.test/media/photos/"+itoa(e.alice.ID)+"/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	served := e.do(http.MethodGet, strings.TrimPrefix(url, "http://media.test"), nil, nil)
	assert.Equal(t, http.StatusOK, served.Code)
	assert.Equal(t, img.Bytes(), served.Body.Bytes())
}

func TestMetricsEndpoint(t *testing.T) {
	e := newEnv(t)
	e.do(http.MethodGet, "/v1/healthz", nil, nil)

	rr := e.do(http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `route="/v1/healthz"`)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
