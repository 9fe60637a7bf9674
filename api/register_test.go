package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	mockdb "github.com/dontcallmebro/BQL-APP/db/mock"
	db "github.com/dontcallmebro/BQL-APP/db/sqlc"
)

func TestRegisterAPI(t *testing.T) {
	email := "test123@example.com"

	testCases := []struct {
		name          string
		body          gin.H
		buildStubs    func(store *mockdb.MockStore)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "OK",
			body: gin.H{"email": email},
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().CreateAPIKey(gomock.Any(), gomock.Any()).Times(1).
					DoAndReturn(func(_ context.Context, arg db.CreateAPIKeyParams) (db.ApiKey, error) {
						return db.ApiKey{
							Prefix:       arg.Prefix,
							EmailAddress: arg.EmailAddress,
							Token:        arg.Token,
							GeneratedAt:  time.Now(),
							ExpiredAt:    arg.ExpiredAt,
						}, nil
					})
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				var resp struct {
					Email     string    `json:"email"`
					APIKey    string    `json:"api_key"`
					ExpiredAt time.Time `json:"expired_at"`
				}
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
				require.Equal(t, email, resp.Email)
				require.Len(t, strings.Split(resp.APIKey, ".")[0], prefixLength)
				require.True(t, resp.ExpiredAt.After(time.Now()))
			},
		},
		{
			name: "INVALID_EMAIL",
			body: gin.H{"email": "not-an-email"},
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().CreateAPIKey(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "INTERNAL_SERVER_ERROR",
			body: gin.H{"email": email},
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().CreateAPIKey(gomock.Any(), gomock.Any()).Times(1).Return(db.ApiKey{}, sql.ErrConnDone)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusInternalServerError, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := mockdb.NewMockStore(ctrl)
			tc.buildStubs(store)

			server := newTestServer(t, store)
			recorder := httptest.NewRecorder()

			body, err := json.Marshal(tc.body)
			require.NoError(t, err)

			request, err := http.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
			require.NoError(t, err)

			server.router.ServeHTTP(recorder, request)
			tc.checkResponse(t, recorder)
		})
	}
}

// an issued key authenticates against its own stored hash
func TestRegisteredKeyAuthenticates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var stored db.ApiKey
	store := mockdb.NewMockStore(ctrl)
	store.EXPECT().CreateAPIKey(gomock.Any(), gomock.Any()).Times(1).
		DoAndReturn(func(_ context.Context, arg db.CreateAPIKeyParams) (db.ApiKey, error) {
			stored = db.ApiKey{Prefix: arg.Prefix, EmailAddress: arg.EmailAddress, Token: arg.Token, ExpiredAt: arg.ExpiredAt}
			return stored, nil
		})
	store.EXPECT().GetAPIKey(gomock.Any(), gomock.Any()).Times(1).
		DoAndReturn(func(_ context.Context, prefix string) (db.ApiKey, error) {
			require.Equal(t, stored.Prefix, prefix)
			return stored, nil
		})

	server := newTestServer(t, store)

	body, err := json.Marshal(gin.H{"email": "test123@example.com"})
	require.NoError(t, err)
	recorder := httptest.NewRecorder()
	request, err := http.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	require.NoError(t, err)
	server.router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		APIKey string `json:"api_key"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Token), []byte(resp.APIKey)))

	path := "/whoami"
	server.router.GET(path, server.authentication, func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"prefix": ctx.GetString(authorizationPrefixKey)})
	})
	recorder = httptest.NewRecorder()
	request, err = http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	addAuthorization(t, request, authorizationTypeBearer, resp.APIKey)
	server.router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), stored.Prefix)
}
