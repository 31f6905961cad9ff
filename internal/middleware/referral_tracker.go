package middleware

import (
	"log"

	"offerwall-service/internal/services"

	"github.com/gin-gonic/gin"
)

// ReferralTracker records a referral click whenever a campaign page is
// requested with a ?ref= code. Tracking failures never fail the request;
// an unknown or stale code is just skipped.
func ReferralTracker(referrals *services.ReferralService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if code := c.Query("ref"); code != "" {
			if _, err := referrals.TrackClick(code, c.Query("userId")); err != nil {
				log.Printf("referral tracker: click for code %q not recorded: %v", code, err)
			}
		}
		c.Next()
	}
}
