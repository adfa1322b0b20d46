package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/Abhi1565/JobHunt-backend/internal/logger"
	"github.com/Abhi1565/JobHunt-backend/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	log "github.com/sirupsen/logrus"
)

const userIDKey = "userId"

// requestLogger resolves handler errors itself so the logged status is the one sent.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		elapsed := time.Since(start)
		metrics.RequestDuration.
			WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).
			Observe(elapsed.Seconds())
		log.Debugf("%s %s %d %v", c.Method(), c.OriginalURL(), status, elapsed)
		return nil
	}
}

func rateLimiter(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests, please slow down.")
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}

// authenticate reads the token cookie first and the bearer header second.
func authenticate(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("token")
		if token == "" {
			token = strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer "))
		}
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "User not authenticated")
		}

		userID, err := parseToken(secret, token)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeAuth).Debugf("rejected token: %v", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Authentication failed")
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

func callerID(c *fiber.Ctx) string {
	userID, _ := c.Locals(userIDKey).(string)
	return userID
}
