package db

import (
	"context"
	"fmt"

	"github.com/2beens/fitnessxs/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Migrate creates the schema if it does not exist yet and seeds the
// built-in movement catalog. Safe to run on every start.
func Migrate(ctx context.Context, pool *pgxpool.Pool) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "db.migrate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	seeded := 0
	for _, m := range builtinMovements {
		tag, err := pool.Exec(
			ctx,
			`INSERT INTO movement (id, name, category_id, equipment, difficulty, instructions, is_custom)
				VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, FALSE)
				ON CONFLICT (name) WHERE is_custom = FALSE DO NOTHING;`,
			m.name, m.category, m.equipment, m.difficulty, m.instructions,
		)
		if err != nil {
			return fmt.Errorf("seed movement %s: %w", m.name, err)
		}
		seeded += int(tag.RowsAffected())
	}
	log.Debugf("migrate: schema ready, %d built-in movements seeded", seeded)

	return nil
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS app_user
(
    id            UUID PRIMARY KEY,
    email         VARCHAR NOT NULL UNIQUE,
    password_hash VARCHAR NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS profile
(
    id                  UUID PRIMARY KEY REFERENCES app_user (id) ON DELETE CASCADE,
    display_name        VARCHAR,
    avatar_url          VARCHAR,
    mail                VARCHAR,
    goal                VARCHAR,
    goal_description    TEXT,
    timezone            VARCHAR NOT NULL DEFAULT 'UTC',
    training_days       TEXT[] NOT NULL DEFAULT '{}',
    onboarding_complete BOOLEAN NOT NULL DEFAULT FALSE,
    theme               VARCHAR NOT NULL DEFAULT 'system',
    user_code           VARCHAR NOT NULL UNIQUE,
    created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS movement
(
    id           UUID PRIMARY KEY,
    name         VARCHAR NOT NULL,
    category_id  VARCHAR,
    equipment    VARCHAR,
    difficulty   VARCHAR,
    instructions TEXT,
    video_url    VARCHAR,
    image_url    VARCHAR,
    is_custom    BOOLEAN NOT NULL DEFAULT FALSE,
    owner_id     UUID REFERENCES app_user (id) ON DELETE CASCADE,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_movement_builtin_name ON movement (name) WHERE is_custom = FALSE;
CREATE INDEX IF NOT EXISTS ix_movement_owner ON movement (owner_id);

CREATE TABLE IF NOT EXISTS program
(
    id            UUID PRIMARY KEY,
    owner_id      UUID NOT NULL REFERENCES app_user (id) ON DELETE CASCADE,
    title         VARCHAR NOT NULL,
    focus         VARCHAR,
    training_days TEXT[] NOT NULL DEFAULT '{}',
    is_active     BOOLEAN NOT NULL DEFAULT TRUE,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS ix_program_owner ON program (owner_id);

CREATE TABLE IF NOT EXISTS program_workout
(
    id          UUID PRIMARY KEY,
    program_id  UUID NOT NULL REFERENCES program (id) ON DELETE CASCADE,
    day_of_week SMALLINT NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
    title       VARCHAR NOT NULL,
    order_index INTEGER NOT NULL DEFAULT 0,
    notes       TEXT
);

CREATE TABLE IF NOT EXISTS workout_block
(
    id          UUID PRIMARY KEY,
    workout_id  UUID NOT NULL REFERENCES program_workout (id) ON DELETE CASCADE,
    block_type  VARCHAR NOT NULL DEFAULT 'single',
    order_index INTEGER NOT NULL DEFAULT 0,
    note        TEXT
);

CREATE TABLE IF NOT EXISTS workout_exercise
(
    id           UUID PRIMARY KEY,
    block_id     UUID NOT NULL REFERENCES workout_block (id) ON DELETE CASCADE,
    movement_id  UUID NOT NULL REFERENCES movement (id),
    sets         INTEGER,
    reps         VARCHAR,
    rest_seconds INTEGER,
    tempo        VARCHAR,
    note         TEXT,
    order_index  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS schedule_instance
(
    id                UUID PRIMARY KEY,
    program_id        UUID NOT NULL REFERENCES program (id) ON DELETE CASCADE,
    workout_id        UUID NOT NULL REFERENCES program_workout (id) ON DELETE CASCADE,
    scheduled_date    DATE NOT NULL,
    status            VARCHAR NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'done', 'skipped')),
    auto_shifted_from DATE
);
CREATE INDEX IF NOT EXISTS ix_schedule_instance_program_date ON schedule_instance (program_id, scheduled_date);

CREATE TABLE IF NOT EXISTS exercise_log
(
    id                   UUID PRIMARY KEY,
    user_id              UUID NOT NULL REFERENCES app_user (id) ON DELETE CASCADE,
    movement_id          UUID NOT NULL REFERENCES movement (id) ON DELETE CASCADE,
    schedule_instance_id UUID REFERENCES schedule_instance (id) ON DELETE SET NULL,
    log_date             DATE NOT NULL,
    sets_completed       INTEGER NOT NULL DEFAULT 0,
    reps_completed       VARCHAR,
    weight_kg            NUMERIC(7, 2),
    duration_seconds     INTEGER,
    note                 TEXT,
    difficulty_rating    SMALLINT CHECK (difficulty_rating BETWEEN 1 AND 5),
    logged_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (user_id, movement_id, log_date)
);

CREATE TABLE IF NOT EXISTS daily_steps
(
    user_id    UUID NOT NULL REFERENCES app_user (id) ON DELETE CASCADE,
    day        DATE NOT NULL,
    steps      INTEGER NOT NULL CHECK (steps >= 0),
    source     VARCHAR NOT NULL DEFAULT 'manual',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (user_id, day)
);

CREATE TABLE IF NOT EXISTS friend_request
(
    id          UUID PRIMARY KEY,
    sender_id   UUID NOT NULL REFERENCES app_user (id) ON DELETE CASCADE,
    receiver_id UUID NOT NULL REFERENCES app_user (id) ON DELETE CASCADE,
    status      VARCHAR NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'accepted', 'rejected')),
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_friend_request_pending ON friend_request (sender_id, receiver_id) WHERE status = 'pending';

CREATE TABLE IF NOT EXISTS friendship
(
    id         UUID PRIMARY KEY,
    user_id    UUID NOT NULL REFERENCES app_user (id) ON DELETE CASCADE,
    friend_id  UUID NOT NULL REFERENCES app_user (id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (user_id, friend_id)
);

CREATE TABLE IF NOT EXISTS workout_invite
(
    id          UUID PRIMARY KEY,
    sender_id   UUID NOT NULL REFERENCES app_user (id) ON DELETE CASCADE,
    receiver_id UUID NOT NULL REFERENCES app_user (id) ON DELETE CASCADE,
    message     TEXT,
    invite_date DATE NOT NULL,
    status      VARCHAR NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'accepted', 'rejected')),
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS ix_workout_invite_receiver_date ON workout_invite (receiver_id, invite_date);
`
