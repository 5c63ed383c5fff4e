package services

import (
	"sort"
	"time"

	"editorial-cms/models"
	"editorial-cms/repositories"

	"gorm.io/gorm"
)

// In-memory repository fakes. They only implement as much behavior as the
// services exercise, returning gorm.ErrRecordNotFound where the real
// implementations would.

type fakeArticleRepo struct {
	nextID   uint
	articles map[uint]models.Article

	// staleSwaps makes the next N UpdateStatus calls lose the race.
	staleSwaps int
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: make(map[uint]models.Article)}
}

func (r *fakeArticleRepo) Create(article *models.Article) error {
	r.nextID++
	article.ID = r.nextID
	article.CreatedAt = time.Now()
	r.articles[article.ID] = *article
	return nil
}

func (r *fakeArticleRepo) GetByID(id uint) (*models.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := a
	return &copied, nil
}

func (r *fakeArticleRepo) GetList(params models.ArticleListParams, publicOnly bool) ([]models.Article, int64, error) {
	var out []models.Article
	for _, a := range r.articles {
		if publicOnly && a.Status != models.StatusPublished {
			continue
		}
		if !publicOnly {
			if params.VisibleToID > 0 && a.AuthorID != params.VisibleToID && a.Status != models.StatusPublished {
				continue
			}
			if params.Status != "" && string(a.Status) != params.Status {
				continue
			}
		}
		if params.AuthorID > 0 && a.AuthorID != params.AuthorID {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeArticleRepo) Update(article *models.Article) error {
	if _, ok := r.articles[article.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.articles[article.ID] = *article
	return nil
}

func (r *fakeArticleRepo) UpdateStatus(id uint, from, to models.ArticleStatus) error {
	if r.staleSwaps > 0 {
		r.staleSwaps--
		return repositories.ErrStaleStatus
	}
	a, ok := r.articles[id]
	if !ok || a.Status != from {
		return repositories.ErrStaleStatus
	}
	a.Status = to
	r.articles[id] = a
	return nil
}

func (r *fakeArticleRepo) Delete(id uint) error {
	delete(r.articles, id)
	return nil
}

func (r *fakeArticleRepo) ReplaceTags(article *models.Article, tags []models.Tag) error {
	a, ok := r.articles[article.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Tags = tags
	article.Tags = tags
	r.articles[article.ID] = a
	return nil
}

type fakeVersionRepo struct {
	nextID   uint
	versions []models.ArticleVersion
}

func newFakeVersionRepo() *fakeVersionRepo {
	return &fakeVersionRepo{}
}

func (r *fakeVersionRepo) Create(version *models.ArticleVersion) error {
	r.nextID++
	version.ID = r.nextID
	version.CreatedAt = time.Now()
	r.versions = append(r.versions, *version)
	return nil
}

func (r *fakeVersionRepo) GetByArticle(articleID uint) ([]models.ArticleVersion, error) {
	var out []models.ArticleVersion
	for _, v := range r.versions {
		if v.ArticleID == articleID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VersionNumber > out[j].VersionNumber })
	return out, nil
}

func (r *fakeVersionRepo) GetByNumber(articleID uint, versionNumber int) (*models.ArticleVersion, error) {
	for _, v := range r.versions {
		if v.ArticleID == articleID && v.VersionNumber == versionNumber {
			copied := v
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVersionRepo) GetLatest(articleID uint) (*models.ArticleVersion, error) {
	versions, _ := r.GetByArticle(articleID)
	if len(versions) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &versions[0], nil
}

type fakeChangeRepo struct {
	nextID  uint
	records map[uint]models.ChangeRecord
}

func newFakeChangeRepo() *fakeChangeRepo {
	return &fakeChangeRepo{records: make(map[uint]models.ChangeRecord)}
}

func (r *fakeChangeRepo) CreateBatch(records []models.ChangeRecord) error {
	for i := range records {
		r.nextID++
		records[i].ID = r.nextID
		records[i].CreatedAt = time.Now()
		r.records[records[i].ID] = records[i]
	}
	return nil
}

func (r *fakeChangeRepo) GetByID(id uint) (*models.ChangeRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := rec
	return &copied, nil
}

func (r *fakeChangeRepo) GetByArticle(articleID uint) ([]models.ChangeRecord, error) {
	return r.filter(articleID, ""), nil
}

func (r *fakeChangeRepo) GetPending(articleID uint) ([]models.ChangeRecord, error) {
	return r.filter(articleID, models.ChangePending), nil
}

func (r *fakeChangeRepo) CountPending(articleID uint) (int64, error) {
	return int64(len(r.filter(articleID, models.ChangePending))), nil
}

func (r *fakeChangeRepo) Update(record *models.ChangeRecord) error {
	if _, ok := r.records[record.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.records[record.ID] = *record
	return nil
}

func (r *fakeChangeRepo) ResolveAllPending(articleID uint, status models.ChangeStatus, resolverID uint, reason string) (int64, error) {
	now := time.Now()
	var resolved int64
	for id, rec := range r.records {
		if rec.ArticleID != articleID || rec.Status != models.ChangePending {
			continue
		}
		rec.Status = status
		rec.ResolvedByID = &resolverID
		rec.ResolvedAt = &now
		if reason != "" {
			rec.RejectReason = reason
		}
		r.records[id] = rec
		resolved++
	}
	return resolved, nil
}

func (r *fakeChangeRepo) filter(articleID uint, status models.ChangeStatus) []models.ChangeRecord {
	var out []models.ChangeRecord
	for _, rec := range r.records {
		if rec.ArticleID != articleID {
			continue
		}
		if status != "" && rec.Status != status {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeReviewRepo struct {
	nextID      uint
	assignments map[uint]models.ReviewAssignment
	decisions   []models.ReviewDecision
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{assignments: make(map[uint]models.ReviewAssignment)}
}

func (r *fakeReviewRepo) CreateAssignment(assignment *models.ReviewAssignment) error {
	r.nextID++
	assignment.ID = r.nextID
	r.assignments[assignment.ID] = *assignment
	return nil
}

func (r *fakeReviewRepo) GetAssignmentByID(id uint) (*models.ReviewAssignment, error) {
	a, ok := r.assignments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := a
	return &copied, nil
}

func (r *fakeReviewRepo) GetAssignmentsByArticle(articleID uint) ([]models.ReviewAssignment, error) {
	var out []models.ReviewAssignment
	for _, a := range r.assignments {
		if a.ArticleID == articleID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeReviewRepo) GetActiveAssignment(articleID, reviewerID uint) (*models.ReviewAssignment, error) {
	for _, a := range r.assignments {
		if a.ArticleID == articleID && a.ReviewerID == reviewerID && a.Status == models.AssignmentAssigned {
			copied := a
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeReviewRepo) HasCompletedAssignment(articleID uint) (bool, error) {
	for _, a := range r.assignments {
		if a.ArticleID == articleID && a.Status == models.AssignmentCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) UpdateAssignment(assignment *models.ReviewAssignment) error {
	if _, ok := r.assignments[assignment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.assignments[assignment.ID] = *assignment
	return nil
}

func (r *fakeReviewRepo) CreateDecision(decision *models.ReviewDecision) error {
	decision.ID = uint(len(r.decisions) + 1)
	decision.CreatedAt = time.Now()
	r.decisions = append(r.decisions, *decision)
	return nil
}

func (r *fakeReviewRepo) GetDecisionsByArticle(articleID uint) ([]models.ReviewDecision, error) {
	var out []models.ReviewDecision
	for _, d := range r.decisions {
		if d.ArticleID == articleID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeRevisionRepo struct {
	nextID   uint
	requests map[uint]models.RevisionRequest
}

func newFakeRevisionRepo() *fakeRevisionRepo {
	return &fakeRevisionRepo{requests: make(map[uint]models.RevisionRequest)}
}

func (r *fakeRevisionRepo) Create(request *models.RevisionRequest) error {
	r.nextID++
	request.ID = r.nextID
	r.requests[request.ID] = *request
	return nil
}

func (r *fakeRevisionRepo) GetByID(id uint) (*models.RevisionRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := req
	return &copied, nil
}

func (r *fakeRevisionRepo) GetPendingByArticle(articleID uint) (*models.RevisionRequest, error) {
	for _, req := range r.requests {
		if req.ArticleID == articleID && req.Status == models.RevisionPending {
			copied := req
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRevisionRepo) GetByArticle(articleID uint) ([]models.RevisionRequest, error) {
	var out []models.RevisionRequest
	for _, req := range r.requests {
		if req.ArticleID == articleID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRevisionRepo) Update(request *models.RevisionRequest) error {
	if _, ok := r.requests[request.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.requests[request.ID] = *request
	return nil
}

type fakeUserRepo struct {
	nextID uint
	users  map[uint]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]models.User)}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeTagRepo struct {
	nextID uint
	tags   map[uint]models.Tag
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: make(map[uint]models.Tag)}
}

func (r *fakeTagRepo) Create(tag *models.Tag) error {
	r.nextID++
	tag.ID = r.nextID
	tag.CreatedAt = time.Now()
	r.tags[tag.ID] = *tag
	return nil
}

func (r *fakeTagRepo) GetByName(name string) (*models.Tag, error) {
	for _, t := range r.tags {
		if t.Name == name {
			copied := t
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTagRepo) GetByID(id uint) (*models.Tag, error) {
	t, ok := r.tags[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := t
	return &copied, nil
}

func (r *fakeTagRepo) GetAll() ([]models.Tag, error) {
	var out []models.Tag
	for _, t := range r.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTagRepo) BulkUpdate(tags []models.Tag) error {
	for _, t := range tags {
		r.tags[t.ID] = t
	}
	return nil
}

func (r *fakeTagRepo) CountPublishedArticlesByTag() (map[uint]int, error) {
	return map[uint]int{}, nil
}

// testEnv bundles the fakes with fully wired services for workflow tests.
type testEnv struct {
	articles  *fakeArticleRepo
	versions  *fakeVersionRepo
	changes   *fakeChangeRepo
	reviews   *fakeReviewRepo
	revisions *fakeRevisionRepo
	users     *fakeUserRepo
	tags      *fakeTagRepo

	articleSvc  ArticleService
	reviewSvc   ReviewService
	changeSvc   ChangeService
	revisionSvc RevisionService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		articles:  newFakeArticleRepo(),
		versions:  newFakeVersionRepo(),
		changes:   newFakeChangeRepo(),
		reviews:   newFakeReviewRepo(),
		revisions: newFakeRevisionRepo(),
		users:     newFakeUserRepo(),
		tags:      newFakeTagRepo(),
	}

	diff := NewDiffEngine()
	policy := NewArticlePolicy()
	env.articleSvc = NewArticleService(env.articles, env.versions, env.reviews, env.tags, diff, policy)
	env.reviewSvc = NewReviewService(env.articles, env.reviews, env.users, policy)
	env.changeSvc = NewChangeService(env.articles, env.versions, env.changes, diff, policy)
	env.revisionSvc = NewRevisionService(env.articles, env.revisions, policy)

	return env
}

func (env *testEnv) addUser(role models.UserRole) models.Actor {
	user := &models.User{
		Username: string(role),
		Email:    string(role) + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	env.users.Create(user)
	return models.Actor{ID: user.ID, Role: role}
}
