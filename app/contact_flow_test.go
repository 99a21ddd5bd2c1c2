package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"spongkj/contacts-api/internal"
	"spongkj/contacts-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type contactResp struct {
	ID       string `json:"id"`
	Owner    string `json:"owner"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Favorite bool   `json:"favorite"`
}

func makeUser(t *testing.T, router *gin.Engine, d *internal.Deps, email string) string {
	t.Helper()

	verifiedUser(t, router, d, email, "secret1")
	return login(t, router, email, "secret1")
}

func makeContact(t *testing.T, router *gin.Engine, token, name string) contactResp {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/contacts", token, gin.H{
		"name":  name,
		"email": name + "@example.com",
		"phone": "555-0101",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var contact contactResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &contact))
	require.NotEmpty(t, contact.ID)

	return contact
}

func TestContactCRUD(t *testing.T) {
	router, d, _ := newTestAPI(t)
	token := makeUser(t, router, d, "owner@example.com")

	created := makeContact(t, router, token, "alice")
	assert.Equal(t, "alice", created.Name)
	assert.False(t, created.Favorite)

	w := doJSON(t, router, http.MethodGet, "/api/contacts/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/contacts/"+created.ID, token, gin.H{
		"name":  "alice b",
		"phone": "555-0202",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated contactResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "alice b", updated.Name)
	assert.Equal(t, "555-0202", updated.Phone)
	assert.Equal(t, "alice@example.com", updated.Email)

	w = doJSON(t, router, http.MethodPatch, "/api/contacts/"+created.ID+"/favorite", token, gin.H{"favorite": true})
	require.Equal(t, http.StatusOK, w.Code)

	var favorited contactResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &favorited))
	assert.True(t, favorited.Favorite)

	w = doJSON(t, router, http.MethodDelete, "/api/contacts/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Contact deleted", respMessage(t, w))

	w = doJSON(t, router, http.MethodGet, "/api/contacts/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContactOwnershipEnforced(t *testing.T) {
	router, d, _ := newTestAPI(t)
	ownerToken := makeUser(t, router, d, "mine@example.com")
	otherToken := makeUser(t, router, d, "theirs@example.com")

	contact := makeContact(t, router, ownerToken, "private")

	cases := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/contacts/" + contact.ID, nil},
		{http.MethodPut, "/api/contacts/" + contact.ID, gin.H{"name": "stolen"}},
		{http.MethodDelete, "/api/contacts/" + contact.ID, nil},
		{http.MethodPatch, "/api/contacts/" + contact.ID + "/favorite", gin.H{"favorite": true}},
	}

	for _, tc := range cases {
		w := doJSON(t, router, tc.method, tc.path, otherToken, tc.body)
		assert.Equalf(t, http.StatusForbidden, w.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, "Access denied", respMessage(t, w))
	}

	// The record is untouched
	var stored model.Contact
	require.NoError(t, d.DB.Where("id = ?", contact.ID).First(&stored).Error)
	assert.Equal(t, "private", stored.Name)
	assert.False(t, stored.Favorite)
}

func TestContactNotFound(t *testing.T) {
	router, d, _ := newTestAPI(t)
	token := makeUser(t, router, d, "lonely@example.com")

	w := doJSON(t, router, http.MethodGet, "/api/contacts/doesNotExist", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Contact not found", respMessage(t, w))
}

func TestContactValidation(t *testing.T) {
	router, d, _ := newTestAPI(t)
	token := makeUser(t, router, d, "strict@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/contacts", token, gin.H{
		"email": "x@example.com",
		"phone": "555-0101",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing required name field", respMessage(t, w))

	w = doJSON(t, router, http.MethodPost, "/api/contacts", token, gin.H{
		"name":  "x",
		"phone": "555-0101",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing required email field", respMessage(t, w))

	w = doJSON(t, router, http.MethodPost, "/api/contacts", token, gin.H{
		"name":  "x",
		"email": "x@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing required phone field", respMessage(t, w))

	contact := makeContact(t, router, token, "valid")

	w = doJSON(t, router, http.MethodPut, "/api/contacts/"+contact.ID, token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing fields", respMessage(t, w))

	w = doJSON(t, router, http.MethodPatch, "/api/contacts/"+contact.ID+"/favorite", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing field favorite", respMessage(t, w))
}

func TestContactListPaginationAndFavoriteFilter(t *testing.T) {
	router, d, _ := newTestAPI(t)
	token := makeUser(t, router, d, "hoarder@example.com")
	otherToken := makeUser(t, router, d, "neighbor@example.com")

	for i := range 25 {
		w := doJSON(t, router, http.MethodPost, "/api/contacts", token, gin.H{
			"name":     fmt.Sprintf("contact-%02d", i),
			"email":    fmt.Sprintf("c%02d@example.com", i),
			"phone":    "555-0101",
			"favorite": i < 5,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	makeContact(t, router, otherToken, "someone-elses")

	list := func(query string) []contactResp {
		w := doJSON(t, router, http.MethodGet, "/api/contacts"+query, token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var contacts []contactResp
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &contacts))
		return contacts
	}

	assert.Len(t, list(""), 20)
	assert.Len(t, list("?page=2"), 5)
	assert.Len(t, list("?limit=10"), 10)

	// The favorite filter wins over the page size
	favorites := list("?favorite=true&limit=20")
	assert.Len(t, favorites, 5)
	for _, f := range favorites {
		assert.True(t, f.Favorite)
	}

	assert.Len(t, list("?favorite=false"), 20)

	// Other users' contacts never leak into the listing
	for _, got := range list("?limit=100") {
		assert.NotEqual(t, "someone-elses", got.Name)
	}

	w := doJSON(t, router, http.MethodGet, "/api/contacts?page=0", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/contacts?limit=0", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// deleteBeforeContactUpdate pulls the row out from under the handler
// right before its UPDATE statement runs, mimicking a delete landing
// between the ownership check and the write.
func deleteBeforeContactUpdate(t *testing.T, d *internal.Deps, contactID string) {
	t.Helper()

	fired := false
	err := d.DB.Callback().Update().Before("gorm:begin_transaction").Register("test_vanishing_contact", func(tx *gorm.DB) {
		if fired {
			return
		}
		if _, ok := tx.Statement.Model.(model.Contact); !ok {
			return
		}
		fired = true
		d.DB.Exec("DELETE FROM contacts WHERE id = ?", contactID)
	})
	require.NoError(t, err)
}

func TestContactUpdateWhenRowVanishesMidRequest(t *testing.T) {
	router, d, _ := newTestAPI(t)
	token := makeUser(t, router, d, "fleeting@example.com")
	contact := makeContact(t, router, token, "fleeting")

	deleteBeforeContactUpdate(t, d, contact.ID)

	w := doJSON(t, router, http.MethodPut, "/api/contacts/"+contact.ID, token, gin.H{"name": "too late"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Contact not found", respMessage(t, w))
}

func TestContactFavoriteWhenRowVanishesMidRequest(t *testing.T) {
	router, d, _ := newTestAPI(t)
	token := makeUser(t, router, d, "fickle@example.com")
	contact := makeContact(t, router, token, "fickle")

	deleteBeforeContactUpdate(t, d, contact.ID)

	w := doJSON(t, router, http.MethodPatch, "/api/contacts/"+contact.ID+"/favorite", token, gin.H{"favorite": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Contact not found", respMessage(t, w))
}
