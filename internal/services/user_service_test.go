package services

import (
	"context"
	"testing"

	"moolah/internal/identity"
	"moolah/internal/models"
	"moolah/internal/patch"
	"moolah/internal/testutil"
)

// recordingSyncer records identity-provider calls for assertions.
type recordingSyncer struct {
	identity.Noop
	profileCalls  int
	disabledCalls []bool
	deleteCalls   int
}

func (s *recordingSyncer) SyncProfile(context.Context, string, string, string) error {
	s.profileCalls++
	return nil
}

func (s *recordingSyncer) SetDisabled(_ context.Context, _ string, disabled bool) error {
	s.disabledCalls = append(s.disabledCalls, disabled)
	return nil
}

func (s *recordingSyncer) Delete(context.Context, string) error {
	s.deleteCalls++
	return nil
}

func TestUpsertSelf(t *testing.T) {
	t.Run("creates_profile", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, identity.Noop{})

		user, err := svc.UpsertSelf("uid-upsert-1", "new@test.com", SelfPatch{
			DisplayName: patch.Set("New User"),
		})
		testutil.AssertNoError(t, err)

		if user.UID != "uid-upsert-1" {
			t.Errorf("expected uid-upsert-1, got %s", user.UID)
		}
		if user.Email != "new@test.com" {
			t.Errorf("expected email from credential, got %s", user.Email)
		}
		if user.DisplayName != "New User" {
			t.Errorf("expected display name set, got %q", user.DisplayName)
		}
		if user.Status != models.UserStatusActive {
			t.Errorf("expected status active, got %s", user.Status)
		}
	})

	t.Run("updates_existing_profile", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, identity.Noop{})
		user := testutil.CreateTestUser(t, db)

		updated, err := svc.UpsertSelf(user.UID, user.Email, SelfPatch{
			Locale: patch.Set("en-GB"),
		})
		testutil.AssertNoError(t, err)

		if updated.Locale != "en-GB" {
			t.Errorf("expected locale en-GB, got %s", updated.Locale)
		}
	})
}

func TestUpdateSelf(t *testing.T) {
	t.Run("whitelisted_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		syncer := &recordingSyncer{}
		svc := NewUserService(db, syncer)
		user := testutil.CreateTestUser(t, db)

		updated, err := svc.UpdateSelf(user.UID, SelfPatch{
			DisplayName: patch.Set("Renamed"),
			Timezone:    patch.Set("Europe/Amsterdam"),
			Currency:    patch.Set("USD"),
		})
		testutil.AssertNoError(t, err)

		if updated.DisplayName != "Renamed" {
			t.Errorf("expected Renamed, got %s", updated.DisplayName)
		}
		if updated.Timezone != "Europe/Amsterdam" {
			t.Errorf("expected Europe/Amsterdam, got %s", updated.Timezone)
		}
		if updated.Currency != "USD" {
			t.Errorf("expected USD, got %s", updated.Currency)
		}
		if syncer.profileCalls != 1 {
			t.Errorf("expected 1 profile sync, got %d", syncer.profileCalls)
		}
	})

	t.Run("invalid_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, identity.Noop{})
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateSelf(user.UID, SelfPatch{
			Currency: patch.Set("EURO"),
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, identity.Noop{})

		_, err := svc.UpdateSelf("uid-missing", SelfPatch{
			DisplayName: patch.Set("Ghost"),
		})
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestAdminUpdate(t *testing.T) {
	t.Run("roles_and_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		syncer := &recordingSyncer{}
		svc := NewUserService(db, syncer)
		user := testutil.CreateTestUser(t, db)

		updated, err := svc.AdminUpdate(user.UID, AdminUserPatch{
			Roles:  patch.Set([]string{models.RoleAdmin}),
			Status: patch.Set(models.UserStatusDisabled),
		})
		testutil.AssertNoError(t, err)

		if !updated.IsAdmin() {
			t.Error("expected user to be admin after roles update")
		}
		if updated.Status != models.UserStatusDisabled {
			t.Errorf("expected status disabled, got %s", updated.Status)
		}
		if len(syncer.disabledCalls) != 1 || !syncer.disabledCalls[0] {
			t.Errorf("expected one SetDisabled(true) call, got %v", syncer.disabledCalls)
		}

		// The roles column must survive a fresh read, not just the
		// in-memory struct returned by the update.
		reloaded, err := svc.AdminGet(user.UID)
		testutil.AssertNoError(t, err)
		if !reloaded.IsAdmin() {
			t.Errorf("expected admin role after reload, got roles %v", reloaded.Roles)
		}
	})

	t.Run("invalid_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, identity.Noop{})
		user := testutil.CreateTestUser(t, db)

		_, err := svc.AdminUpdate(user.UID, AdminUserPatch{
			Status: patch.Set(models.UserStatus("frozen")),
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAdminDelete(t *testing.T) {
	t.Run("soft_delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		syncer := &recordingSyncer{}
		svc := NewUserService(db, syncer)
		user := testutil.CreateTestUser(t, db)

		testutil.AssertNoError(t, svc.AdminDelete(user.UID, false))

		got, err := svc.AdminGet(user.UID)
		testutil.AssertNoError(t, err)
		if got.Status != models.UserStatusDeleted {
			t.Errorf("expected status deleted, got %s", got.Status)
		}
		if len(syncer.disabledCalls) != 1 || !syncer.disabledCalls[0] {
			t.Errorf("expected one SetDisabled(true) call, got %v", syncer.disabledCalls)
		}
	})

	t.Run("hard_delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		syncer := &recordingSyncer{}
		svc := NewUserService(db, syncer)
		user := testutil.CreateTestUser(t, db)

		testutil.AssertNoError(t, svc.AdminDelete(user.UID, true))

		_, err := svc.AdminGet(user.UID)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
		if syncer.deleteCalls != 1 {
			t.Errorf("expected 1 provider delete, got %d", syncer.deleteCalls)
		}
	})
}
