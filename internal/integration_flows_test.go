//go:build integration_test || all_tests

package internal_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/2beens/fitnessxs/internal/exerciselogs"
	"github.com/2beens/fitnessxs/internal/movements"
	"github.com/2beens/fitnessxs/internal/profiles"
	"github.com/2beens/fitnessxs/internal/programs"
	"github.com/2beens/fitnessxs/internal/schedule"
	"github.com/2beens/fitnessxs/internal/social"
	"github.com/2beens/fitnessxs/internal/steps"
	"github.com/2beens/fitnessxs/pkg"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

func (s *IntegrationTestSuite) TestAuthAndProfile() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.newUser(ctx)

	resp, body := s.do(ctx, http.MethodGet, "/profile", user.token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	var p profiles.Profile
	s.Require().NoError(json.Unmarshal(body, &p))
	assert.Equal(s.T(), user.id, p.ID)
	assert.Len(s.T(), p.UserCode, 8)
	assert.False(s.T(), p.OnboardingComplete)

	onboarded := true
	resp, body = s.do(ctx, http.MethodPut, "/profile", user.token, map[string]any{
		"displayName":        gofakeit.FirstName(),
		"goal":               "strength",
		"timezone":           "Europe/Berlin",
		"trainingDays":       []string{"monday", "thursday"},
		"onboardingComplete": &onboarded,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	s.Require().NoError(json.Unmarshal(body, &p))
	assert.True(s.T(), p.OnboardingComplete)
	assert.Equal(s.T(), "Europe/Berlin", p.Timezone)

	// duplicate email
	resp, _ = s.do(ctx, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    user.email,
		"password": "whatever-password",
	})
	assert.Equal(s.T(), http.StatusConflict, resp.StatusCode)

	resp, _ = s.do(ctx, http.MethodPost, "/auth/logout", user.token, nil)
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)

	resp, _ = s.do(ctx, http.MethodGet, "/profile", user.token, nil)
	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestProgramScheduleAndLogs() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.newUser(ctx)

	resp, body := s.do(ctx, http.MethodGet, "/movements?category=legs", user.token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	var catalog []movements.Movement
	s.Require().NoError(json.Unmarshal(body, &catalog))
	s.Require().NotEmpty(catalog)
	movementID := catalog[0].ID

	resp, body = s.do(ctx, http.MethodGet, "/movements/"+movementID, user.token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	var movement movements.Movement
	s.Require().NoError(json.Unmarshal(body, &movement))
	assert.Equal(s.T(), catalog[0].Name, movement.Name)

	sets := 3
	reps := "10,8,6"
	resp, body = s.do(ctx, http.MethodPost, "/programs", user.token, programs.ProgramInput{
		Title: "Leg days",
		Workouts: []programs.WorkoutInput{
			{
				Day: "monday",
				Exercises: []programs.ExerciseInput{
					{MovementID: movementID, Sets: &sets, Reps: &reps},
				},
			},
			{Day: "thursday", Title: "Light legs"},
		},
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))
	var created programs.Program
	s.Require().NoError(json.Unmarshal(body, &created))
	assert.Len(s.T(), created.Workouts, 2)

	resp, body = s.do(ctx, http.MethodGet, "/programs/"+created.ID, user.token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	var detail programs.Program
	s.Require().NoError(json.Unmarshal(body, &detail))
	s.Require().Len(detail.Workouts, 2)
	assert.Equal(s.T(), "Monday workout", detail.Workouts[0].Title)
	s.Require().Len(detail.Workouts[0].Blocks, 1)
	assert.Equal(s.T(), movementID, detail.Workouts[0].Blocks[0].Exercises[0].MovementID)

	resp, body = s.do(ctx, http.MethodGet, "/schedule/history/week", user.token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	var week schedule.WeekHistory
	s.Require().NoError(json.Unmarshal(body, &week))
	assert.LessOrEqual(s.T(), len(week.Days), 7)
	assert.Zero(s.T(), week.Summary.Completed)

	resp, body = s.do(ctx, http.MethodPost, "/logs", user.token, exerciselogs.CreatePayload{
		MovementID:    movementID,
		SetsCompleted: 3,
		RepsCompleted: &reps,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))

	resp, body = s.do(ctx, http.MethodGet, "/logs/stats", user.token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	var stats []exerciselogs.MovementStats
	s.Require().NoError(json.Unmarshal(body, &stats))
	s.Require().Len(stats, 1)
	assert.Equal(s.T(), 1, stats[0].TotalSessions)

	resp, _ = s.do(ctx, http.MethodDelete, "/programs/"+created.ID, user.token, nil)
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)

	resp, _ = s.do(ctx, http.MethodGet, "/programs/"+created.ID, user.token, nil)
	assert.Equal(s.T(), http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestSkipAndShift_FutureOccurrence() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.newUser(ctx)

	// one workout per weekday, so the next seven days each get one instance
	workouts := make([]programs.WorkoutInput, 0, 7)
	for i := 0; i < 7; i++ {
		day, err := pkg.FromDayIndex(i)
		s.Require().NoError(err)
		workouts = append(workouts, programs.WorkoutInput{Day: day})
	}
	resp, body := s.do(ctx, http.MethodPost, "/programs", user.token, programs.ProgramInput{
		Title:    "Every day",
		Workouts: workouts,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))
	var created programs.Program
	s.Require().NoError(json.Unmarshal(body, &created))

	type row struct {
		id          string
		date        pkg.Date
		status      string
		shiftedFrom *pkg.Date
	}
	loadRows := func() []row {
		rows, err := s.db.Query(
			ctx,
			`SELECT id::text, scheduled_date, status, auto_shifted_from
				FROM schedule_instance WHERE program_id = $1 ORDER BY scheduled_date, id;`,
			created.ID,
		)
		s.Require().NoError(err)
		defer rows.Close()
		var out []row
		for rows.Next() {
			var r row
			s.Require().NoError(rows.Scan(&r.id, &r.date, &r.status, &r.shiftedFrom))
			out = append(out, r)
		}
		s.Require().NoError(rows.Err())
		return out
	}

	// a second program of the same user is out of reach of the shift
	resp, body = s.do(ctx, http.MethodPost, "/programs", user.token, programs.ProgramInput{
		Title:    "Mobility",
		Workouts: []programs.WorkoutInput{{Day: "sunday"}},
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))
	var mobility programs.Program
	s.Require().NoError(json.Unmarshal(body, &mobility))

	var (
		mobilityID   string
		mobilityDate pkg.Date
	)
	s.Require().NoError(s.db.QueryRow(
		ctx,
		`SELECT id::text, scheduled_date FROM schedule_instance WHERE program_id = $1;`,
		mobility.ID,
	).Scan(&mobilityID, &mobilityDate))

	before := loadRows()
	s.Require().Len(before, 7)
	skipped := before[3]
	done := before[5]

	resp, body = s.do(ctx, http.MethodPut, "/schedule/"+done.id+"/status", user.token, map[string]string{"status": "done"})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	resp, body = s.do(ctx, http.MethodPost, "/schedule/"+skipped.id+"/skip-and-shift", user.token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	var res schedule.SkipResult
	s.Require().NoError(json.Unmarshal(body, &res))
	assert.Equal(s.T(), created.ID, res.ProgramID)
	assert.Equal(s.T(), 2, res.Shifted)
	assert.Len(s.T(), res.Shifts, 2)

	after := make(map[string]row)
	for _, r := range loadRows() {
		after[r.id] = r
	}

	// occurrences before the skipped date stay where they are
	for _, b := range before[:3] {
		a := after[b.id]
		assert.Equal(s.T(), b.date.String(), a.date.String())
		assert.Nil(s.T(), a.shiftedFrom)
		assert.Equal(s.T(), "pending", a.status)
	}

	assert.Equal(s.T(), "skipped", after[skipped.id].status)
	assert.Equal(s.T(), skipped.date.String(), after[skipped.id].date.String())

	for _, b := range []row{before[4], before[6]} {
		a := after[b.id]
		assert.Equal(s.T(), b.date.AddDays(1).String(), a.date.String())
		s.Require().NotNil(a.shiftedFrom)
		assert.Equal(s.T(), b.date.String(), a.shiftedFrom.String())
		assert.Equal(s.T(), "pending", a.status)
	}

	// only pending occurrences move
	assert.Equal(s.T(), "done", after[done.id].status)
	assert.Equal(s.T(), done.date.String(), after[done.id].date.String())
	assert.Nil(s.T(), after[done.id].shiftedFrom)

	var (
		mobilityDateAfter pkg.Date
		mobilityShifted   *pkg.Date
	)
	s.Require().NoError(s.db.QueryRow(
		ctx,
		`SELECT scheduled_date, auto_shifted_from FROM schedule_instance WHERE id = $1;`,
		mobilityID,
	).Scan(&mobilityDateAfter, &mobilityShifted))
	assert.Equal(s.T(), mobilityDate.String(), mobilityDateAfter.String())
	assert.Nil(s.T(), mobilityShifted)

	// someone else's instance, and a malformed id
	other := s.newUser(ctx)
	resp, _ = s.do(ctx, http.MethodPost, "/schedule/"+before[0].id+"/skip-and-shift", other.token, nil)
	assert.Equal(s.T(), http.StatusNotFound, resp.StatusCode)
	resp, _ = s.do(ctx, http.MethodPost, "/schedule/not-a-uuid/skip-and-shift", user.token, nil)
	assert.Equal(s.T(), http.StatusNotFound, resp.StatusCode)
	resp, _ = s.do(ctx, http.MethodPut, "/schedule/not-a-uuid/status", user.token, map[string]string{"status": "done"})
	assert.Equal(s.T(), http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestSteps() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	user := s.newUser(ctx)

	resp, body := s.do(ctx, http.MethodGet, "/steps/today", user.token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	var today steps.DailySteps
	s.Require().NoError(json.Unmarshal(body, &today))
	assert.Equal(s.T(), 0, today.Steps)

	resp, body = s.do(ctx, http.MethodPut, "/steps", user.token, steps.ReportPayload{Steps: 4321})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	resp, body = s.do(ctx, http.MethodGet, "/steps/today", user.token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	s.Require().NoError(json.Unmarshal(body, &today))
	assert.Equal(s.T(), 4321, today.Steps)
	assert.Equal(s.T(), steps.SourceManual, today.Source)
}

func (s *IntegrationTestSuite) TestFriendship() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	alice := s.newUser(ctx)
	bob := s.newUser(ctx)

	resp, body := s.do(ctx, http.MethodGet, "/profile", bob.token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	var bobProfile profiles.Profile
	s.Require().NoError(json.Unmarshal(body, &bobProfile))

	resp, body = s.do(ctx, http.MethodGet, fmt.Sprintf("/profiles/search?code=%s", bobProfile.UserCode), alice.token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	var found profiles.Summary
	s.Require().NoError(json.Unmarshal(body, &found))
	assert.Equal(s.T(), bob.id, found.ID)

	resp, body = s.do(ctx, http.MethodPost, "/social/requests", alice.token, map[string]string{"receiverId": bob.id})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))
	var request social.FriendRequest
	s.Require().NoError(json.Unmarshal(body, &request))

	resp, _ = s.do(ctx, http.MethodPost, "/social/requests", alice.token, map[string]string{"receiverId": bob.id})
	assert.Equal(s.T(), http.StatusConflict, resp.StatusCode)

	// only the receiver accepts
	resp, _ = s.do(ctx, http.MethodPost, "/social/requests/"+request.ID+"/accept", alice.token, nil)
	assert.Equal(s.T(), http.StatusForbidden, resp.StatusCode)

	resp, body = s.do(ctx, http.MethodGet, "/social/requests/incoming", bob.token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	var incoming []social.FriendRequest
	s.Require().NoError(json.Unmarshal(body, &incoming))
	s.Require().Len(incoming, 1)
	assert.Equal(s.T(), alice.id, incoming[0].SenderID)

	resp, body = s.do(ctx, http.MethodPost, "/social/requests/"+request.ID+"/accept", bob.token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	for _, u := range []testUser{alice, bob} {
		resp, body = s.do(ctx, http.MethodGet, "/social/friends", u.token, nil)
		s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
		var friends []social.Friend
		s.Require().NoError(json.Unmarshal(body, &friends))
		assert.Len(s.T(), friends, 1)
	}

	resp, body = s.do(ctx, http.MethodPost, "/social/invites", alice.token, map[string]string{
		"receiverId": bob.id,
		"message":    "legs tomorrow?",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))
	var invite social.WorkoutInvite
	s.Require().NoError(json.Unmarshal(body, &invite))

	resp, body = s.do(ctx, http.MethodPut, "/social/invites/"+invite.ID, bob.token, map[string]string{"status": "accepted"})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	resp, _ = s.do(ctx, http.MethodDelete, "/social/friends/"+bob.id, alice.token, nil)
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)

	resp, _ = s.do(ctx, http.MethodDelete, "/social/friends/"+bob.id, alice.token, nil)
	assert.Equal(s.T(), http.StatusNotFound, resp.StatusCode)
}
