package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"moolah/internal/models"
	"moolah/internal/pagination"
	"moolah/internal/patch"
	"moolah/internal/testutil"
)

func TestCreateGoal(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		goal, err := svc.Create(user.UID, CreateGoalParams{
			Title:        "Trip to Japan",
			TargetAmount: decimal.NewFromInt(1000),
		})
		testutil.AssertNoError(t, err)

		if goal.ID == "" {
			t.Fatal("expected non-empty goal ID")
		}
		if goal.Status != models.GoalStatusActive {
			t.Errorf("expected status active, got %s", goal.Status)
		}
		if goal.Progress == nil || *goal.Progress != 0 {
			t.Errorf("expected progress 0, got %v", goal.Progress)
		}
	})

	t.Run("non_positive_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(user.UID, CreateGoalParams{
			Title:        "Nothing",
			TargetAmount: decimal.Zero,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_current", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(user.UID, CreateGoalParams{
			Title:         "Backwards",
			TargetAmount:  decimal.NewFromInt(100),
			CurrentAmount: decimal.NewFromInt(-1),
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGoalDerivedStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewGoalService(db)
	user := testutil.CreateTestUser(t, db)

	goal, err := svc.Create(user.UID, CreateGoalParams{
		Title:        "Trip",
		TargetAmount: decimal.NewFromInt(1000),
	})
	testutil.AssertNoError(t, err)

	if goal.Status != models.GoalStatusActive || goal.Progress == nil || *goal.Progress != 0 {
		t.Errorf("fresh goal: expected active/0, got %s/%v", goal.Status, goal.Progress)
	}

	// Halfway there.
	goal, err = svc.Update(user.UID, goal.ID, GoalPatch{
		CurrentAmount: patch.Set(decimal.NewFromInt(500)),
	})
	testutil.AssertNoError(t, err)
	if goal.Status != models.GoalStatusActive || *goal.Progress != 50 {
		t.Errorf("halfway: expected active/50, got %s/%d", goal.Status, *goal.Progress)
	}

	// Reached the target: status flips to completed without any status write.
	goal, err = svc.Update(user.UID, goal.ID, GoalPatch{
		CurrentAmount: patch.Set(decimal.NewFromInt(1000)),
	})
	testutil.AssertNoError(t, err)
	if goal.Status != models.GoalStatusCompleted || *goal.Progress != 100 {
		t.Errorf("at target: expected completed/100, got %s/%d", goal.Status, *goal.Progress)
	}

	// Overshooting clamps progress at 100.
	goal, err = svc.Update(user.UID, goal.ID, GoalPatch{
		CurrentAmount: patch.Set(decimal.NewFromInt(1500)),
	})
	testutil.AssertNoError(t, err)
	if goal.Status != models.GoalStatusCompleted || *goal.Progress != 100 {
		t.Errorf("overshoot: expected completed/100, got %s/%d", goal.Status, *goal.Progress)
	}

	// Archiving wins over completion.
	goal, err = svc.Update(user.UID, goal.ID, GoalPatch{
		Status: patch.Set(models.GoalStatusArchived),
	})
	testutil.AssertNoError(t, err)
	if goal.Status != models.GoalStatusArchived {
		t.Errorf("archived: expected archived, got %s", goal.Status)
	}
}

func TestGoalStatusCannotBeSetToCompleted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewGoalService(db)
	user := testutil.CreateTestUser(t, db)
	goal := testutil.CreateTestGoal(t, db, user.UID, decimal.NewFromInt(1000), decimal.Zero)

	_, err := svc.Update(user.UID, goal.ID, GoalPatch{
		Status: patch.Set(models.GoalStatusCompleted),
	})
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestListGoals(t *testing.T) {
	t.Run("derived_status_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		active := testutil.CreateTestGoal(t, db, user.UID, decimal.NewFromInt(1000), decimal.NewFromInt(100))
		completed := testutil.CreateTestGoal(t, db, user.UID, decimal.NewFromInt(500), decimal.NewFromInt(500))
		archived := testutil.CreateTestGoal(t, db, user.UID, decimal.NewFromInt(200), decimal.Zero)
		if err := db.Model(archived).Update("status", models.GoalStatusArchived).Error; err != nil {
			t.Fatalf("failed to archive goal: %v", err)
		}

		cases := []struct {
			status models.GoalStatus
			wantID string
		}{
			{models.GoalStatusActive, active.ID},
			{models.GoalStatusCompleted, completed.ID},
			{models.GoalStatusArchived, archived.ID},
		}
		for _, tc := range cases {
			status := tc.status
			result, err := svc.List(user.UID, GoalFilter{Status: &status}, pagination.PageRequest{})
			testutil.AssertNoError(t, err)

			if result.TotalItems != 1 {
				t.Errorf("status %s: expected 1 goal, got %d", tc.status, result.TotalItems)
				continue
			}
			if result.Data[0].ID != tc.wantID {
				t.Errorf("status %s: expected goal %s, got %s", tc.status, tc.wantID, result.Data[0].ID)
			}
		}
	})

	t.Run("due_date_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		early := testutil.CreateTestGoal(t, db, user.UID, decimal.NewFromInt(100), decimal.Zero)
		late := testutil.CreateTestGoal(t, db, user.UID, decimal.NewFromInt(100), decimal.Zero)
		if err := db.Model(early).Update("due_date", "2026-03-01").Error; err != nil {
			t.Fatalf("failed to set due date: %v", err)
		}
		if err := db.Model(late).Update("due_date", "2026-09-01").Error; err != nil {
			t.Fatalf("failed to set due date: %v", err)
		}

		from, to := "2026-01-01", "2026-06-30"
		result, err := svc.List(user.UID, GoalFilter{DueFrom: &from, DueTo: &to}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Fatalf("expected 1 goal in range, got %d", result.TotalItems)
		}
		if result.Data[0].ID != early.ID {
			t.Errorf("expected goal %s, got %s", early.ID, result.Data[0].ID)
		}
	})
}

func TestGetGoalByID(t *testing.T) {
	t.Run("other_users_goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, alice.UID, decimal.NewFromInt(100), decimal.Zero)

		_, err := svc.GetByID(bob.UID, goal.ID)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")

		_, err = svc.GetByID(alice.UID, "not-a-uuid")
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestDeleteGoal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewGoalService(db)
	user := testutil.CreateTestUser(t, db)
	goal := testutil.CreateTestGoal(t, db, user.UID, decimal.NewFromInt(100), decimal.Zero)

	testutil.AssertNoError(t, svc.Delete(user.UID, goal.ID))

	_, err := svc.GetByID(user.UID, goal.ID)
	testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
}
