package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/dontcallmebro/BQL-APP/data"
	mockdb "github.com/dontcallmebro/BQL-APP/db/mock"
	db "github.com/dontcallmebro/BQL-APP/db/sqlc"
	"github.com/dontcallmebro/BQL-APP/utils"
)

type calibrateResponse struct {
	Results  []resultResponse  `json:"results"`
	Failures []failureResponse `json:"failures"`
	Counts   map[string]int    `json:"counts"`
}

func syntheticQuotes(t *testing.T) ([]data.Row, []gin.H) {
	cfg := data.DefaultSyntheticConfig()
	cfg.Days = 2
	cfg.Tenors = []string{"1M", "3M"}
	rows, _, err := data.Synthetic(cfg)
	require.NoError(t, err)

	body := make([]gin.H, len(rows))
	for i, row := range rows {
		body[i] = gin.H{
			"date":    row.Date.Format(utils.Layout),
			"tenor":   row.Tenor,
			"forward": row.Forward,
			"atm":     row.ATM,
			"call25":  row.Call25,
			"put25":   row.Put25,
			"call10":  row.Call10,
			"put10":   row.Put10,
		}
	}
	return rows, body
}

func TestCalibrateAPI(t *testing.T) {
	key := testKey(t, time.Now().Add(time.Hour))
	rows, quotes := syntheticQuotes(t)

	partial := make([]gin.H, len(quotes))
	for i, q := range quotes {
		partial[i] = gin.H{}
		for k, v := range q {
			partial[i][k] = v
		}
	}
	delete(partial[1], "call10")
	partial[2]["tenor"] = "5Y"

	testCases := []struct {
		name          string
		body          gin.H
		buildStubs    func(store *mockdb.MockStore)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "OK",
			body: gin.H{"rows": quotes},
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetAPIKey(gomock.Any(), gomock.Eq(testPrefix)).Times(1).Return(key, nil)
				store.EXPECT().SaveCalibrations(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				resp := decodeCalibrate(t, recorder)
				require.Len(t, resp.Results, len(rows))
				require.Empty(t, resp.Failures)
				for i, res := range resp.Results {
					require.Equal(t, rows[i].Tenor, res.Tenor)
					require.True(t, rows[i].Date.Equal(res.Date))
					require.Equal(t, 1.0, res.Beta)
					require.Len(t, res.Smile, len(data.Buckets))
					for j, pt := range res.Smile {
						require.InDelta(t, rows[i].Vol(data.Buckets[j])/100.0, pt.Vol, 5e-4)
					}
				}
			},
		},
		{
			name: "PERSIST",
			body: gin.H{"rows": quotes, "persist": true},
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetAPIKey(gomock.Any(), gomock.Eq(testPrefix)).Times(1).Return(key, nil)
				store.EXPECT().SaveCalibrations(gomock.Any(), gomock.Any()).Times(1).
					DoAndReturn(func(_ context.Context, args []db.InsertCalibrationParams) ([]db.Calibration, error) {
						require.Len(t, args, len(rows))
						for i, arg := range args {
							require.Equal(t, rows[i].Tenor, arg.Tenor)
							require.Equal(t, rows[i].Forward, arg.StrikeAtm)
						}
						return make([]db.Calibration, len(args)), nil
					})
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
			},
		},
		{
			name: "PARTIAL_ROWS",
			body: gin.H{"rows": partial},
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetAPIKey(gomock.Any(), gomock.Eq(testPrefix)).Times(1).Return(key, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				resp := decodeCalibrate(t, recorder)
				require.Len(t, resp.Results, len(rows)-2)
				require.Len(t, resp.Failures, 2)
				require.Equal(t, map[string]int{"incomplete": 1, "unknown_tenor": 1}, resp.Counts)
				require.Equal(t, "incomplete", resp.Failures[0].Reason)
				require.Equal(t, "5Y", resp.Failures[1].Tenor)
			},
		},
		{
			name: "BETA_OUT_OF_RANGE",
			body: gin.H{"rows": quotes, "beta": 1.5},
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetAPIKey(gomock.Any(), gomock.Eq(testPrefix)).Times(1).Return(key, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "NO_ROWS",
			body: gin.H{"rows": []gin.H{}},
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetAPIKey(gomock.Any(), gomock.Eq(testPrefix)).Times(1).Return(key, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "BAD_DATE",
			body: gin.H{"rows": []gin.H{{"date": "01/03/2024", "tenor": "1M", "forward": 1.1}}},
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetAPIKey(gomock.Any(), gomock.Eq(testPrefix)).Times(1).Return(key, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "PERSIST_FAILS",
			body: gin.H{"rows": quotes, "persist": true},
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetAPIKey(gomock.Any(), gomock.Eq(testPrefix)).Times(1).Return(key, nil)
				store.EXPECT().SaveCalibrations(gomock.Any(), gomock.Any()).Times(1).Return(nil, sql.ErrConnDone)
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

			request, err := http.NewRequest(http.MethodPost, "/v1/calibrate", bytes.NewReader(body))
			require.NoError(t, err)

			addAuthorization(t, request, authorizationTypeBearer, testAPIKey)
			server.router.ServeHTTP(recorder, request)
			tc.checkResponse(t, recorder)
		})
	}
}

func TestListCalibrationsAPI(t *testing.T) {
	key := testKey(t, time.Now().Add(time.Hour))
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	stored := []db.Calibration{
		{ID: 1, Date: date, Tenor: "1M", Forward: 1.1, StrikeAtm: 1.1, Rho: -20, Nu: 80, Alpha: 0.08, Beta: 1, T: 1.0 / 12.0},
		{ID: 2, Date: date, Tenor: "3M", Forward: 1.1, StrikeAtm: 1.1, Rho: -18, Nu: 70, Alpha: 0.08, Beta: 1, T: 0.25},
	}

	testCases := []struct {
		name          string
		query         string
		buildStubs    func(store *mockdb.MockStore)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name:  "LATEST",
			query: "",
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetAPIKey(gomock.Any(), gomock.Eq(testPrefix)).Times(1).Return(key, nil)
				store.EXPECT().LatestCalibrations(gomock.Any()).Times(1).Return(stored, nil)
				store.EXPECT().ListCalibrations(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				var resp struct {
					Results []data.CalibrationResult `json:"results"`
				}
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
				require.Len(t, resp.Results, 2)
				require.Equal(t, "3M", resp.Results[1].Tenor)
				require.Equal(t, -18.0, resp.Results[1].Rho)
			},
		},
		{
			name:  "BY_TENOR",
			query: "?tenor=1m",
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetAPIKey(gomock.Any(), gomock.Eq(testPrefix)).Times(1).Return(key, nil)
				store.EXPECT().ListCalibrations(gomock.Any(), gomock.Eq("1M")).Times(1).Return(stored[:1], nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
			},
		},
		{
			name:  "EMPTY_RESULT",
			query: "",
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetAPIKey(gomock.Any(), gomock.Eq(testPrefix)).Times(1).Return(key, nil)
				store.EXPECT().LatestCalibrations(gomock.Any()).Times(1).Return(nil, sql.ErrNoRows)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusNotFound, recorder.Code)
			},
		},
		{
			name:  "INTERNAL_SERVER_ERROR",
			query: "?tenor=3M",
			buildStubs: func(store *mockdb.MockStore) {
				store.EXPECT().GetAPIKey(gomock.Any(), gomock.Eq(testPrefix)).Times(1).Return(key, nil)
				store.EXPECT().ListCalibrations(gomock.Any(), gomock.Eq("3M")).Times(1).Return(nil, sql.ErrConnDone)
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

			request, err := http.NewRequest(http.MethodGet, "/v1/calibrations"+tc.query, nil)
			require.NoError(t, err)

			addAuthorization(t, request, authorizationTypeBearer, testAPIKey)
			server.router.ServeHTTP(recorder, request)
			tc.checkResponse(t, recorder)
		})
	}
}

func decodeCalibrate(t *testing.T, recorder *httptest.ResponseRecorder) calibrateResponse {
	var resp calibrateResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}
