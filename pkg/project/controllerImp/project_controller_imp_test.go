package controllerImp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webplanner/entities"
	"webplanner/pkg/project/repository"
)

type fakeRepo struct {
	created *entities.Project
	byOwner map[string]*entities.Project
}

func (f *fakeRepo) Create(p *entities.Project) error {
	f.created = p
	return nil
}
func (f *fakeRepo) FindByID(id uint, uid string) (*entities.Project, error) {
	if p, ok := f.byOwner[uid]; ok && p.ProjectID == id {
		return p, nil
	}
	return nil, repository.ErrNotFound
}
func (f *fakeRepo) ListByUser(uid string) ([]entities.Project, error) {
	if p, ok := f.byOwner[uid]; ok {
		return []entities.Project{*p}, nil
	}
	return nil, nil
}
func (f *fakeRepo) UpdateStatus(id uint, uid string, status string) error {
	if _, err := f.FindByID(id, uid); err != nil {
		return err
	}
	return nil
}
func (f *fakeRepo) Delete(id uint, uid string) error {
	if _, err := f.FindByID(id, uid); err != nil {
		return err
	}
	return nil
}

func newCtx(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreate(t *testing.T) {
	repo := &fakeRepo{}
	c, rec := newCtx(t, http.MethodPost, "/projects",
		`{"name":"CrumbTrail","description":"A bakery finder app","code_editor":"cursor"}`)
	c.Set("uid", "U_TEST")

	require.NoError(t, New(repo).Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, repo.created)
	assert.Equal(t, "U_TEST", repo.created.UserID)
	assert.Equal(t, "in-progress", repo.created.Status)
}

func TestCreate_RequiresNameAndDescription(t *testing.T) {
	c, rec := newCtx(t, http.MethodPost, "/projects", `{"name":"  "}`)
	c.Set("uid", "U_TEST")
	require.NoError(t, New(&fakeRepo{}).Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGet_ScopedToOwner(t *testing.T) {
	repo := &fakeRepo{byOwner: map[string]*entities.Project{
		"U_OWNER": {ProjectID: 1, UserID: "U_OWNER", Name: "CrumbTrail"},
	}}
	h := New(repo)

	c, rec := newCtx(t, http.MethodGet, "/projects/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("uid", "U_OWNER")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newCtx(t, http.MethodGet, "/projects/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("uid", "U_STRANGER")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Handlers must tolerate a context that never went through the identity
// middleware instead of panicking on the uid lookup.
func TestHandlers_MissingIdentity(t *testing.T) {
	h := New(&fakeRepo{})

	c, rec := newCtx(t, http.MethodGet, "/projects/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newCtx(t, http.MethodDelete, "/projects/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newCtx(t, http.MethodGet, "/projects", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
