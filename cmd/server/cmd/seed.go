package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gatherly/server/internal/config"
	"github.com/gatherly/server/internal/domain/events"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedEventCount int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with development data",
	Long: `Populate the database with a test user and a batch of varied events.

Creates the user test@example.com (password: password123) if it does not
exist, inserts events spread across locations, types, and lifecycle
states, and registers some RSVPs. Intended for development and demo
environments only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		logger := config.NewLogger(cfg.Logging)

		pool, err := newPool(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer pool.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		return runSeed(ctx, pool, logger)
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedEventCount, "events", 5000, "number of events to create")
}

var seedLocations = []string{
	"Paris", "Lyon", "Marseille", "Toulouse", "Nice",
	"Nantes", "Bordeaux", "Lille", "Rennes", "Strasbourg",
}

var seedEventTypes = []string{
	"Conference", "Workshop", "Meetup", "Seminar", "Training",
	"Webinar", "Hackathon", "Round Table", "Networking", "Presentation",
}

var seedTopics = []string{
	"Tech", "Design", "Business", "Marketing", "Data",
	"AI", "Cloud", "DevOps", "Frontend", "Backend",
}

var seedStatuses = []events.Status{
	events.StatusUpcoming, events.StatusOngoing, events.StatusCompleted, events.StatusCancelled,
}

func runSeed(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	userID, err := seedTestUser(ctx, pool)
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	logger.Info().Str("user_id", userID).Msg("test user ready")

	if err := seedEvents(ctx, pool, userID, seedEventCount); err != nil {
		return fmt.Errorf("seed events: %w", err)
	}
	logger.Info().Int("count", seedEventCount).Msg("events created")

	rsvps, err := seedRSVPs(ctx, pool, userID)
	if err != nil {
		return fmt.Errorf("seed rsvps: %w", err)
	}
	logger.Info().Int("count", rsvps).Msg("rsvps created")

	return nil
}

func seedTestUser(ctx context.Context, pool *pgxpool.Pool) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	const insertQuery = `
INSERT INTO users (email, password_hash, name)
VALUES ($1, $2, $3)
ON CONFLICT (email) DO NOTHING`
	if _, err := pool.Exec(ctx, insertQuery, "test@example.com", string(hash), "Test User"); err != nil {
		return "", err
	}

	var userID string
	err = pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, "test@example.com").Scan(&userID)
	return userID, err
}

func seedEvents(ctx context.Context, pool *pgxpool.Pool, organizerID string, count int) error {
	const batchSize = 500

	for offset := 0; offset < count; offset += batchSize {
		batch := &pgx.Batch{}
		end := offset + batchSize
		if end > count {
			end = count
		}

		for i := offset; i < end; i++ {
			eventType := seedEventTypes[rand.Intn(len(seedEventTypes))]
			topic := seedTopics[rand.Intn(len(seedTopics))]
			location := seedLocations[rand.Intn(len(seedLocations))]
			status := seedStatuses[rand.Intn(len(seedStatuses))]

			// Spread dates across the surrounding year, past and future
			daysOffset := rand.Intn(365) - 180
			eventDate := time.Now().AddDate(0, 0, daysOffset)
			maxAttendees := rand.Intn(200) + 20

			batch.Queue(`
INSERT INTO events (ulid, organizer_id, title, description, location, event_date, max_attendees, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				ulid.Make().String(),
				organizerID,
				fmt.Sprintf("%s %s #%d", eventType, topic, i+1),
				fmt.Sprintf("Description for a %s about %s", eventType, topic),
				location,
				eventDate,
				maxAttendees,
				status,
			)
		}

		if err := pool.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}
	}
	return nil
}

func seedRSVPs(ctx context.Context, pool *pgxpool.Pool, userID string) (int, error) {
	rows, err := pool.Query(ctx, `SELECT id FROM events ORDER BY id LIMIT 100`)
	if err != nil {
		return 0, err
	}
	eventIDs, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return 0, err
	}

	created := 0
	for _, eventID := range eventIDs {
		if rand.Intn(2) == 0 {
			continue
		}
		tag, err := pool.Exec(ctx, `
INSERT INTO rsvps (ulid, event_id, user_id, status)
VALUES ($1, $2, $3, 'accepted')
ON CONFLICT (event_id, user_id) DO NOTHING`,
			ulid.Make().String(), eventID, userID)
		if err != nil {
			return created, err
		}
		created += int(tag.RowsAffected())
	}
	return created, nil
}
