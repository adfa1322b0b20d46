package services

import (
	"sync"
	"testing"

	"github.com/Abhi1565/JobHunt-backend/internal/apperr"
	"github.com/Abhi1565/JobHunt-backend/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Apply_WhenNoResume_ShouldRejectWithoutCreatingApplication(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	f.addApplicant(t, "applicant-2", "Ravi", "ravi@example.com", "")
	job := f.createJob(t)

	_, err := f.apply.Apply(f.ctx, "applicant-2", job.ID)

	assert.True(apperr.Is(err, apperr.KindValidation))
	assert.ErrorContains(err, "upload your resume")
	exists, _ := f.applications.Exists(f.ctx, job.ID, "applicant-2")
	assert.False(exists)
	assert.False(f.reloadJob(t, job.ID).IsLocked())
}

func Test_Apply_WhenFirstApplication_ShouldActivateLock(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	job := f.createJob(t, "Go", "SQL", "Docker", "Kubernetes")

	application, err := f.apply.Apply(f.ctx, applicantID, job.ID)

	require.NoError(t, err)
	assert.Equal(models.StatusPending, application.Status)
	stored := f.reloadJob(t, job.ID)
	assert.True(stored.ApplicationLockActivatedAt.Equal(f.now))
	assert.Equal([]string{"Go", "SQL", "Docker"}, stored.CoreRequirements)
}

func Test_Apply_WhenAlreadyApplied_ShouldConflict(t *testing.T) {
	f := newFixture(t)
	job := f.createJob(t)
	_, err := f.apply.Apply(f.ctx, applicantID, job.ID)
	require.NoError(t, err)

	_, err = f.apply.Apply(f.ctx, applicantID, job.ID)

	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.EqualError(t, err, duplicateApplicationMessage)
}

func Test_GetActiveJob_AfterTwoApplies_ShouldListApplicationsInCreationOrder(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	f.addApplicant(t, "applicant-2", "Ravi", "ravi@example.com", "https://cdn.test/ravi.pdf")
	job := f.createJob(t)

	first, err := f.apply.Apply(f.ctx, applicantID, job.ID)
	require.NoError(t, err)
	second, err := f.apply.Apply(f.ctx, "applicant-2", job.ID)
	require.NoError(t, err)

	active, err := f.lifecycle.GetActiveJob(f.ctx, job.ID)

	require.NoError(t, err)
	require.Len(t, active.Applications, 2)
	assert.Equal(first.ID, active.Applications[0].ID)
	assert.Equal(second.ID, active.Applications[1].ID)
	assert.Equal("applicant-2", active.Applications[1].ApplicantID)
}

func Test_Apply_WhenConcurrentForSamePair_ShouldPersistExactlyOne(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	job := f.createJob(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.apply.Apply(f.ctx, applicantID, job.ID)
		}(i)
	}
	wg.Wait()

	succeeded, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case apperr.Is(err, apperr.KindConflict):
			conflicts++
		}
	}
	assert.Equal(1, succeeded)
	assert.Equal(1, conflicts)

	applications, err := f.applications.ListByJob(f.ctx, job.ID)
	require.NoError(t, err)
	assert.Len(applications, 1)
}

func Test_Apply_WhenJobMissing_ShouldReturnNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.apply.Apply(f.ctx, applicantID, "missing")

	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func Test_ListApplied_ShouldRemoveOrphansAndPreloadCompany(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	first := f.createJob(t)
	second := f.createJob(t)
	_, err := f.apply.Apply(f.ctx, applicantID, first.ID)
	require.NoError(t, err)
	_, err = f.apply.Apply(f.ctx, applicantID, second.ID)
	require.NoError(t, err)
	orphan := models.NewApplication("deleted-job", applicantID)
	require.NoError(t, f.applications.Create(f.ctx, orphan))

	applications, err := f.apply.ListApplied(f.ctx, applicantID)

	require.NoError(t, err)
	require.Len(t, applications, 2)
	assert.ElementsMatch([]string{first.ID, second.ID}, []string{applications[0].JobID, applications[1].JobID})
	assert.Equal("Acme Labs", applications[0].Job.Company.Name)
	_, err = f.applications.GetByID(f.ctx, orphan.ID)
	assert.Error(err)
}

func Test_ListApplied_WhenCleanupDisabled_ShouldOnlyFilterOrphans(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	service := NewJobApplications(f.lifecycle, f.jobs, f.applications, f.users, NewOrphanCleaner(f.applications, false))
	orphan := models.NewApplication("deleted-job", applicantID)
	require.NoError(t, f.applications.Create(f.ctx, orphan))

	applications, err := service.ListApplied(f.ctx, applicantID)

	require.NoError(t, err)
	assert.Empty(applications)
	_, err = f.applications.GetByID(f.ctx, orphan.ID)
	assert.NoError(err)
}

func Test_ListApplicants_WhenNotOwner_ShouldBeUnauthorized(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	job := f.createJob(t)
	_, err := f.apply.Apply(f.ctx, applicantID, job.ID)
	require.NoError(t, err)

	_, _, err = f.apply.ListApplicants(f.ctx, applicantID, job.ID)
	assert.True(apperr.Is(err, apperr.KindAuthorization))

	_, applications, err := f.apply.ListApplicants(f.ctx, employerID, job.ID)
	require.NoError(t, err)
	require.Len(t, applications, 1)
	assert.Equal("Asha", applications[0].Applicant.FullName)
}
