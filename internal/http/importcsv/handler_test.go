package importcsv_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/filski95/web-app-challets/internal/booking"
	"github.com/filski95/web-app-challets/internal/customer"
	"github.com/filski95/web-app-challets/internal/http/importcsv"
	"github.com/filski95/web-app-challets/internal/importer"
)

const ownerA = "3e0bbf7c-6b6f-4f6e-9a2e-0c5a2f1d9b10"
const ownerB = "89b4a1de-7f19-4c2a-8d3c-52d5a9c4e711"

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func uploadRequest(t *testing.T, csv string) *http.Request {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", "phone.csv")
	require.NoError(t, err)

	_, err = fw.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

// A conflicting row is reported under rejected while the rest of the log
// still imports.
func TestHandler_ImportCSV_RejectsConflictingRowWithoutAbortingBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := booking.NewMockRepository(ctrl)
	holdOK := booking.NewMockHold(ctrl)
	holdClash := booking.NewMockHold(ctrl)
	profiles := booking.NewMockProfiles(ctrl)
	notifier := booking.NewMockNotifier(ctrl)
	docs := booking.NewMockDocumentGenerator(ctrl)

	bookingSvc := booking.NewService(repo, profiles, notifier, docs)
	h := importcsv.NewHandler(importer.NewService(), bookingSvc)

	csv := strings.Join([]string{
		"house;start_date;end_date;profile_id;owner_id",
		"1;2100-01-10;2100-01-12;7;" + ownerA,
		"1;2100-01-11;2100-01-13;8;" + ownerB,
	}, "\n")

	repo.EXPECT().GetHousePrice(gomock.Any(), 1).Return(250, nil).Times(2)

	// First row books the empty house.
	repo.EXPECT().BeginHold(gomock.Any(), 1).Return(holdOK, nil)
	holdOK.EXPECT().ListActive(gomock.Any()).Return(nil, nil)
	holdOK.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *booking.Reservation) error {
			r.ID = 101
			return nil
		})
	holdOK.EXPECT().Commit().Return(nil)
	holdOK.EXPECT().Rollback().Return(nil)
	repo.EXPECT().AssignNumber(gomock.Any(), int64(101), gomock.Any()).Return(true, nil)
	profiles.EXPECT().GetProfile(gomock.Any(), int64(7)).Return(&customer.Profile{ID: 7}, nil)
	notifier.EXPECT().ReservationCreated(gomock.Any(), gomock.Any()).Return(nil)

	// Second row now clashes with the first.
	repo.EXPECT().BeginHold(gomock.Any(), 1).Return(holdClash, nil)
	holdClash.EXPECT().ListActive(gomock.Any()).Return([]*booking.Reservation{
		{
			ID:        101,
			Status:    booking.StatusNotConfirmed,
			StartDate: datePtr(2100, 1, 10),
			EndDate:   datePtr(2100, 1, 12),
		},
	}, nil)
	holdClash.EXPECT().Rollback().Return(nil)

	router := chi.NewRouter()
	h.Routes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, csv))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Imported []struct {
			Number      string `json:"reservation_number"`
			HouseNumber int    `json:"house_number"`
			StartDate   string `json:"start_date"`
		} `json:"imported"`
		Rejected []struct {
			HouseNumber int    `json:"house_number"`
			StartDate   string `json:"start_date"`
			EndDate     string `json:"end_date"`
			Reason      string `json:"reason"`
		} `json:"rejected"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Imported, 1)
	assert.Equal(t, 1, resp.Imported[0].HouseNumber)
	assert.Equal(t, "2100-01-10", resp.Imported[0].StartDate)
	assert.NotEmpty(t, resp.Imported[0].Number)

	require.Len(t, resp.Rejected, 1)
	assert.Equal(t, 1, resp.Rejected[0].HouseNumber)
	assert.Equal(t, "2100-01-11", resp.Rejected[0].StartDate)
	assert.Equal(t, "2100-01-13", resp.Rejected[0].EndDate)
	assert.Contains(t, resp.Rejected[0].Reason, "overlaps with your selection")
}

func TestHandler_ImportCSV_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bookingSvc := booking.NewService(
		booking.NewMockRepository(ctrl),
		booking.NewMockProfiles(ctrl),
		booking.NewMockNotifier(ctrl),
		booking.NewMockDocumentGenerator(ctrl),
	)
	h := importcsv.NewHandler(importer.NewService(), bookingSvc)

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	router := chi.NewRouter()
	h.Routes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ImportCSV_UnparsableFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bookingSvc := booking.NewService(
		booking.NewMockRepository(ctrl),
		booking.NewMockProfiles(ctrl),
		booking.NewMockNotifier(ctrl),
		booking.NewMockDocumentGenerator(ctrl),
	)
	h := importcsv.NewHandler(importer.NewService(), bookingSvc)

	router := chi.NewRouter()
	h.Routes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "not a booking log at all"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no header row found")
}
