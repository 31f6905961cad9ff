package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"offerwall-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func newHiqmobiTest(t *testing.T, handler http.HandlerFunc) *HiqmobiService {
	db := setupTestDB(t)
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &HiqmobiService{DB: db, BaseURL: server.URL, APIKey: "test-key"}
}

func TestFetchConversionsNormalizesFieldVariants(t *testing.T) {
	svc := newHiqmobiTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"clickid": "ck1", "p1": "9876543210", "payout": 250.0, "offer_name": "Recharge", "status": "completed"},
				{"id": "ck2", "phone": "1231231234"},
			},
		})
	})

	records, err := svc.FetchConversions(1, 50, "", "", "")
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	var first models.Conversion
	assert.NoError(t, svc.DB.Where("click_id = ?", "ck1").First(&first).Error)
	assert.Equal(t, "9876543210", first.Phone)
	assert.Equal(t, 250.0, first.Payout)
	assert.Equal(t, "Recharge", first.OfferName)
	assert.Equal(t, models.ConversionStatusCompleted, first.Status)

	// Variant field names and defaults
	var second models.Conversion
	assert.NoError(t, svc.DB.Where("click_id = ?", "ck2").First(&second).Error)
	assert.Equal(t, "1231231234", second.Phone)
	assert.Equal(t, 100.0, second.Payout)
	assert.Equal(t, "Unknown Offer", second.OfferName)
	assert.Equal(t, models.ConversionStatusPending, second.Status)
	assert.Equal(t, models.ConversionSourceHiqmobi, second.Source)
}

func TestFetchConversionsUpsertConverges(t *testing.T) {
	payout := 100.0
	svc := newHiqmobiTest(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"clickid": "ck-same", "p1": "9876543210", "payout": payout, "status": "pending"},
		})
	})

	_, err := svc.FetchConversions(1, 50, "", "", "")
	assert.NoError(t, err)

	payout = 300.0
	_, err = svc.FetchConversions(1, 50, "", "", "")
	assert.NoError(t, err)

	var count int64
	svc.DB.Model(&models.Conversion{}).Where("click_id = ?", "ck-same").Count(&count)
	assert.Equal(t, int64(1), count)

	var stored models.Conversion
	assert.NoError(t, svc.DB.Where("click_id = ?", "ck-same").First(&stored).Error)
	assert.Equal(t, 300.0, stored.Payout)
}

func TestFetchConversionsUpstreamFailure(t *testing.T) {
	db := setupTestDB(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // force a transport error

	svc := &HiqmobiService{DB: db, BaseURL: server.URL, APIKey: "test-key"}
	_, err := svc.FetchConversions(1, 50, "", "", "")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGetUserProcessDetails(t *testing.T) {
	db := setupTestDB(t)
	svc := &HiqmobiService{DB: db}

	db.Create(&models.Conversion{ClickID: "a1", Phone: "9876543210", Payout: 100, Status: models.ConversionStatusCompleted})
	db.Create(&models.Conversion{ClickID: "a2", Phone: "9876543210", Payout: 50, Status: models.ConversionStatusPending})
	db.Create(&models.Conversion{ClickID: "a3", Phone: "other", Payout: 999, Status: models.ConversionStatusCompleted})

	details, err := svc.GetUserProcessDetails("9876543210")
	assert.NoError(t, err)
	assert.Len(t, details.Conversions, 2)
	assert.Equal(t, 150.0, details.TotalPayout)
	assert.Equal(t, int64(1), details.Completed)
	assert.Equal(t, int64(1), details.Pending)
	assert.Equal(t, int64(0), details.Rejected)

	_, err = svc.GetUserProcessDetails("")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestReconcileLinksConversionsAndCreatesPayouts(t *testing.T) {
	db := setupTestDB(t)
	svc := &HiqmobiService{DB: db}
	payouts := NewPayoutService(db)

	user := models.User{Phone: "9876543210", UpiID: "user@upi", CampaignID: "1"}
	assert.NoError(t, db.Create(&user).Error)

	db.Create(&models.Conversion{ClickID: "done", Phone: "9876543210", Payout: 120, Status: models.ConversionStatusCompleted, Source: models.ConversionSourceHiqmobi})
	db.Create(&models.Conversion{ClickID: "still-pending", Phone: "9876543210", Payout: 80, Status: models.ConversionStatusPending, Source: models.ConversionSourceHiqmobi})
	db.Create(&models.Conversion{ClickID: "no-lead", Phone: "0000000000", Payout: 10, Status: models.ConversionStatusCompleted, Source: models.ConversionSourceHiqmobi})

	matched, err := svc.Reconcile(payouts)
	assert.NoError(t, err)
	assert.Equal(t, 1, matched)

	var conv models.Conversion
	assert.NoError(t, db.Where("click_id = ?", "done").First(&conv).Error)
	assert.NotNil(t, conv.UserID)
	assert.Equal(t, user.ID, *conv.UserID)
	assert.NotNil(t, conv.ProcessedAt)

	var payout models.Payout
	assert.NoError(t, db.Where("conversion_id = ?", "done").First(&payout).Error)
	assert.Equal(t, 120.0, payout.Amount)
	assert.Equal(t, "user@upi", payout.UpiID)

	// A second run sees no unlinked completed conversions.
	matched, err = svc.Reconcile(payouts)
	assert.NoError(t, err)
	assert.Equal(t, 0, matched)
}
