//go:build integration

package stores

import (
	"context"
	"testing"
	"time"

	"github.com/freshcheck/api-go/apperrors"
	"github.com/freshcheck/api-go/config"
	"github.com/freshcheck/api-go/models"
	"github.com/freshcheck/api-go/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// setupTestDB starts a PostgreSQL container and migrates the schema into it.
func setupTestDB(t *testing.T) *gorm.DB {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("freshcheck"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := config.ConnectDatabase(&config.Config{DatabaseURL: connStr})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

type fixture struct {
	users     *GormUserStore
	forms     *GormFormStore
	reports   *GormReportStore
	admin     models.User
	inspector models.User
	other     models.User
	form      models.InspectionForm
}

func newFixture(t *testing.T) *fixture {
	db := setupTestDB(t)
	ctx := context.Background()
	f := &fixture{
		users:   &GormUserStore{DB: db},
		forms:   &GormFormStore{DB: db},
		reports: &GormReportStore{DB: db},
	}

	f.admin = models.User{Name: "Admin", Email: "admin@hotel.com", Password: "x", Role: models.RoleAdmin}
	f.inspector = models.User{Name: "Ina", Email: "ina@hotel.com", Password: "x", Role: models.RoleInspector}
	f.other = models.User{Name: "Oto", Email: "oto@hotel.com", Password: "x", Role: models.RoleInspector}
	for _, u := range []*models.User{&f.admin, &f.inspector, &f.other} {
		require.NoError(t, f.users.Create(ctx, u))
	}

	f.form = models.InspectionForm{Title: "Kitchen", Version: 1, IsActive: true, CreatedByID: f.admin.ID}
	require.NoError(t, f.form.SetQuestions([]models.Question{{ID: "q1", Text: "Clean", Type: models.QuestionCheckbox}}))
	require.NoError(t, f.forms.Create(ctx, &f.form))
	return f
}

func (f *fixture) draft(t *testing.T, owner uint, answers models.Answers) *models.InspectionReport {
	data, err := models.EncodeAnswers(answers)
	require.NoError(t, err)
	r := &models.InspectionReport{FormID: f.form.ID, InspectorID: owner, Data: data, Status: models.StatusDraft}
	require.NoError(t, f.reports.Create(context.Background(), r))
	return r
}

func TestDuplicateEmailIsConflict(t *testing.T) {
	f := newFixture(t)

	dup := models.User{Name: "Again", Email: "ina@hotel.com", Password: "x", Role: models.RoleInspector}
	err := f.users.Create(context.Background(), &dup)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestDeleteReferencedUserIsConflict(t *testing.T) {
	f := newFixture(t)
	f.draft(t, f.inspector.ID, nil)

	err := f.users.Delete(context.Background(), f.inspector.ID)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestReportDataRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty := f.draft(t, f.inspector.ID, nil)
	got, err := f.reports.Get(ctx, empty.ID, types.ReportScope{})
	require.NoError(t, err)
	answers, err := got.DecodeAnswers()
	require.NoError(t, err)
	assert.Equal(t, models.Answers{}, answers)

	changed := models.Answers{"q1": true, "temp": 3.5, "note": "ok"}
	remarks := "checked twice"
	got, err = f.reports.UpdateDraft(ctx, empty.ID, f.inspector.ID, types.DraftChanges{Data: &changed, Remarks: &remarks})
	require.NoError(t, err)
	answers, err = got.DecodeAnswers()
	require.NoError(t, err)
	assert.Equal(t, changed, answers)
	assert.Equal(t, remarks, got.Remarks)
}

func TestUpdateDraftGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.draft(t, f.inspector.ID, nil)
	remarks := "x"

	_, err := f.reports.UpdateDraft(ctx, r.ID, f.other.ID, types.DraftChanges{Remarks: &remarks})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.reports.UpdateDraft(ctx, 9999, f.inspector.ID, types.DraftChanges{Remarks: &remarks})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.reports.Transition(ctx, submit(r.ID, f.inspector.ID))
	require.NoError(t, err)
	_, err = f.reports.UpdateDraft(ctx, r.ID, f.inspector.ID, types.DraftChanges{Remarks: &remarks})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func submit(reportID, owner uint) types.Transition {
	return types.Transition{
		ReportID: reportID,
		From:     models.StatusDraft,
		To:       models.StatusSubmitted,
		ActorID:  owner,
		OwnerID:  &owner,
		At:       time.Now(),
	}
}

func TestTransitionIsConditional(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.draft(t, f.inspector.ID, nil)

	_, err := f.reports.Transition(ctx, submit(r.ID, f.other.ID))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	submitted, err := f.reports.Transition(ctx, submit(r.ID, f.inspector.ID))
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)

	// A second submit loses: the row is no longer a draft.
	_, err = f.reports.Transition(ctx, submit(r.ID, f.inspector.ID))
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	remarks := "Fridge at 9C"
	rejected, err := f.reports.Transition(ctx, types.Transition{
		ReportID: r.ID,
		From:     models.StatusSubmitted,
		To:       models.StatusRejected,
		ActorID:  f.admin.ID,
		Remarks:  &remarks,
		At:       time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.ReviewedByID)
	assert.Equal(t, f.admin.ID, *rejected.ReviewedByID)
	assert.Equal(t, remarks, rejected.Remarks)

	history, err := f.reports.History(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.StatusSubmitted, history[0].ToStatus)
	assert.Equal(t, models.StatusRejected, history[1].ToStatus)
	assert.Equal(t, remarks, history[1].Remarks)

	_, err = f.reports.Transition(ctx, types.Transition{
		ReportID: 424242, From: models.StatusSubmitted, To: models.StatusApproved, ActorID: f.admin.ID, At: time.Now(),
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestVisibilityScopes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine := f.draft(t, f.inspector.ID, nil)
	theirs := f.draft(t, f.other.ID, nil)
	_, err := f.reports.Transition(ctx, submit(theirs.ID, f.other.ID))
	require.NoError(t, err)
	_, err = f.reports.Transition(ctx, types.Transition{
		ReportID: theirs.ID, From: models.StatusSubmitted, To: models.StatusApproved, ActorID: f.admin.ID, At: time.Now(),
	})
	require.NoError(t, err)

	ids := func(scope types.ReportScope) []uint {
		reports, err := f.reports.List(ctx, types.ReportFilter{Scope: scope})
		require.NoError(t, err)
		var out []uint
		for _, r := range reports {
			out = append(out, r.ID)
		}
		return out
	}

	inspectorID := f.inspector.ID
	approved := models.StatusApproved
	assert.ElementsMatch(t, []uint{mine.ID, theirs.ID}, ids(types.ReportScope{}))
	assert.Equal(t, []uint{mine.ID}, ids(types.ReportScope{InspectorID: &inspectorID}))
	assert.Equal(t, []uint{theirs.ID}, ids(types.ReportScope{Status: &approved}))

	_, err = f.reports.Get(ctx, mine.ID, types.ReportScope{Status: &approved})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestInactiveFormKeepsReportsReadable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.draft(t, f.inspector.ID, nil)

	require.NoError(t, f.forms.Deactivate(ctx, f.form.ID))

	active, err := f.forms.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := f.forms.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	got, err := f.reports.Get(ctx, r.ID, types.ReportScope{})
	require.NoError(t, err)
	require.NotNil(t, got.Form)
	assert.False(t, got.Form.IsActive)
}

func TestAttachments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.draft(t, f.inspector.ID, nil)
	key := "reports/1/1_a.jpg"

	got, err := f.reports.AddAttachment(ctx, r.ID, f.inspector.ID, key)
	require.NoError(t, err)
	assert.Equal(t, []string{key}, []string(got.Attachments))

	// Confirming twice keeps a single entry.
	got, err = f.reports.AddAttachment(ctx, r.ID, f.inspector.ID, key)
	require.NoError(t, err)
	assert.Len(t, got.Attachments, 1)

	_, err = f.reports.AddAttachment(ctx, r.ID, f.other.ID, "reports/1/2_b.jpg")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	got, err = f.reports.RemoveAttachment(ctx, r.ID, f.inspector.ID, key)
	require.NoError(t, err)
	assert.Empty(t, got.Attachments)

	_, err = f.reports.RemoveAttachment(ctx, r.ID, f.inspector.ID, key)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStatsCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stats := &GormStatsStore{DB: f.reports.DB}

	f.draft(t, f.inspector.ID, nil)
	r := f.draft(t, f.inspector.ID, nil)
	f.draft(t, f.other.ID, nil)
	_, err := f.reports.Transition(ctx, submit(r.ID, f.inspector.ID))
	require.NoError(t, err)

	c, err := stats.Counts(ctx, f.inspector.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.Users)
	assert.Equal(t, int64(1), c.Forms)
	assert.Equal(t, int64(2), c.Reports[models.StatusDraft])
	assert.Equal(t, int64(1), c.Reports[models.StatusSubmitted])
	assert.Equal(t, int64(1), c.Mine[models.StatusDraft])
	assert.Equal(t, int64(1), c.Mine[models.StatusSubmitted])
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	created, err := config.SeedAdmin(ctx, db, "root@hotel.com", "secret1", "Root")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = config.SeedAdmin(ctx, db, "root@hotel.com", "secret1", "Root")
	require.NoError(t, err)
	assert.False(t, created)
}
