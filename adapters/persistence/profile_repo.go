package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Yeralkhan06/MyProfile3/internal/domain/profile"
	"github.com/Yeralkhan06/MyProfile3/pkg/apperror"
	"github.com/Yeralkhan06/MyProfile3/pkg/logger"
)

var psqlProfile = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

func (r *postgresProfileRepo) Get(ctx context.Context, id int64) (*profile.Profile, error) {
	queries := []sq.SelectBuilder{
		psqlProfile.Select("id", "first_name", "last_name", "middle_name", "email", "phone", "location", "bio",
			"photo_url", "github_username", "linkedin_url", "website_url", "created_at", "updated_at").
			From("profile").Where(sq.Eq{"id": id}),
		psqlProfile.Select("skill_name", "skill_level", "category").
			From("skills").Where(sq.Eq{"profile_id": id}).OrderBy("sort_order", "id"),
		psqlProfile.Select("id", "company_name", "position", "start_date", "end_date", "description", "technologies").
			From("experience").Where(sq.Eq{"profile_id": id}).OrderBy("sort_order", "id"),
		psqlProfile.Select("id", "institution_name", "degree", "field_of_study", "start_date", "end_date", "description").
			From("education").Where(sq.Eq{"profile_id": id}).OrderBy("sort_order", "id"),
		psqlProfile.Select("id", "project_name", "description", "github_url", "demo_url", "technologies", "image_url",
			"start_date", "end_date").
			From("projects").Where(sq.Eq{"profile_id": id}).OrderBy("sort_order", "id"),
	}

	batch := &pgx.Batch{}
	for _, q := range queries {
		sqlStr, args, err := q.ToSql()
		if err != nil {
			return nil, apperror.NewInternal("failed to build profile query", err)
		}
		batch.Queue(sqlStr, args...)
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, apperror.NewInternal("failed to begin read transaction", err)
	}
	defer tx.Rollback(ctx)

	p, err := r.readBatch(tx.SendBatch(ctx, batch), id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.NewInternal("failed to commit read transaction", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) readBatch(br pgx.BatchResults, id int64) (*profile.Profile, error) {
	defer br.Close()

	p := &profile.Profile{}
	err := br.QueryRow().Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.MiddleName, &p.Email, &p.Phone, &p.Location, &p.Bio,
		&p.PhotoURL, &p.GithubUsername, &p.LinkedinURL, &p.WebsiteURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", strconv.FormatInt(id, 10))
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}

	if p.Skills, err = scanSkills(br); err != nil {
		return nil, err
	}
	if p.Experience, err = r.scanExperience(br); err != nil {
		return nil, err
	}
	if p.Education, err = scanEducation(br); err != nil {
		return nil, err
	}
	if p.Projects, err = r.scanProjects(br); err != nil {
		return nil, err
	}
	return p, nil
}

func scanSkills(br pgx.BatchResults) ([]profile.Skill, error) {
	rows, err := br.Query()
	if err != nil {
		return nil, apperror.NewInternal("failed to query skills", err)
	}
	defer rows.Close()

	items := make([]profile.Skill, 0)
	for rows.Next() {
		var s profile.Skill
		if err := rows.Scan(&s.Name, &s.Level, &s.Category); err != nil {
			return nil, apperror.NewInternal("failed to scan skill row", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating skill rows", err)
	}
	return items, nil
}

func (r *postgresProfileRepo) scanExperience(br pgx.BatchResults) ([]profile.Experience, error) {
	rows, err := br.Query()
	if err != nil {
		return nil, apperror.NewInternal("failed to query experience", err)
	}
	defer rows.Close()

	items := make([]profile.Experience, 0)
	for rows.Next() {
		var e profile.Experience
		var techBytes []byte
		if err := rows.Scan(&e.ID, &e.CompanyName, &e.Position, &e.StartDate, &e.EndDate, &e.Description, &techBytes); err != nil {
			return nil, apperror.NewInternal("failed to scan experience row", err)
		}
		e.Technologies = decodeTechnologies(techBytes, r.logger, zap.String("table", "experience"), zap.Int64("id", e.ID))
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating experience rows", err)
	}
	return items, nil
}

func scanEducation(br pgx.BatchResults) ([]profile.Education, error) {
	rows, err := br.Query()
	if err != nil {
		return nil, apperror.NewInternal("failed to query education", err)
	}
	defer rows.Close()

	items := make([]profile.Education, 0)
	for rows.Next() {
		var e profile.Education
		if err := rows.Scan(&e.ID, &e.InstitutionName, &e.Degree, &e.FieldOfStudy, &e.StartDate, &e.EndDate, &e.Description); err != nil {
			return nil, apperror.NewInternal("failed to scan education row", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating education rows", err)
	}
	return items, nil
}

func (r *postgresProfileRepo) scanProjects(br pgx.BatchResults) ([]profile.Project, error) {
	rows, err := br.Query()
	if err != nil {
		return nil, apperror.NewInternal("failed to query projects", err)
	}
	defer rows.Close()

	items := make([]profile.Project, 0)
	for rows.Next() {
		var p profile.Project
		var techBytes []byte
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.GithubURL, &p.DemoURL, &techBytes, &p.ImageURL, &p.StartDate, &p.EndDate); err != nil {
			return nil, apperror.NewInternal("failed to scan project row", err)
		}
		p.Technologies = decodeTechnologies(techBytes, r.logger, zap.String("table", "projects"), zap.Int64("id", p.ID))
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating project rows", err)
	}
	return items, nil
}

// decodeTechnologies never fails: NULL, JSON null and garbage all read as an empty list.
func decodeTechnologies(raw []byte, l logger.Logger, fields ...zap.Field) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		l.Warn("Failed to unmarshal technologies", append(fields, zap.Error(err))...)
		return []string{}
	}
	if out == nil {
		return []string{}
	}
	return out
}

func encodeTechnologies(in []string) ([]byte, error) {
	if in == nil {
		in = []string{}
	}
	return json.Marshal(in)
}

func (r *postgresProfileRepo) Apply(ctx context.Context, id int64, fn func(ctx context.Context, w profile.Writer) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return apperror.NewInternal("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	// Locks the row so concurrent writers queue up behind this transaction.
	cmdTag, err := tx.Exec(ctx, `UPDATE profile SET updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to lock profile", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", strconv.FormatInt(id, 10))
	}

	if err := fn(ctx, &txWriter{tx: tx, profileID: id}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewInternal("failed to commit profile update", err)
	}
	return nil
}

type txWriter struct {
	tx        pgx.Tx
	profileID int64
}

func (w *txWriter) ReplaceProfile(ctx context.Context, f profile.Fields) error {
	sqlStr, args, err := psqlProfile.Update("profile").
		SetMap(map[string]any{
			"first_name":      f.FirstName,
			"last_name":       f.LastName,
			"middle_name":     f.MiddleName,
			"email":           f.Email,
			"phone":           f.Phone,
			"location":        f.Location,
			"bio":             f.Bio,
			"photo_url":       f.PhotoURL,
			"github_username": f.GithubUsername,
			"linkedin_url":    f.LinkedinURL,
			"website_url":     f.WebsiteURL,
		}).
		Where(sq.Eq{"id": w.profileID}).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build profile update", err)
	}

	if _, err := w.tx.Exec(ctx, sqlStr, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewConflict("profile", "email", f.Email)
		}
		return apperror.NewInternal("failed to update profile", err)
	}
	return nil
}

func (w *txWriter) ReplaceSkills(ctx context.Context, items []profile.Skill) error {
	ins := psqlProfile.Insert("skills").Columns("profile_id", "sort_order", "skill_name", "skill_level", "category")
	for i, s := range items {
		ins = ins.Values(w.profileID, i, s.Name, s.Level, s.Category)
	}
	return w.replace(ctx, profile.CollectionSkills, ins, len(items))
}

func (w *txWriter) ReplaceExperience(ctx context.Context, items []profile.Experience) error {
	ins := psqlProfile.Insert("experience").
		Columns("profile_id", "sort_order", "company_name", "position", "start_date", "end_date", "description", "technologies")
	for i, e := range items {
		tech, err := encodeTechnologies(e.Technologies)
		if err != nil {
			return apperror.NewInternal("failed to marshal experience technologies", err)
		}
		ins = ins.Values(w.profileID, i, e.CompanyName, e.Position, e.StartDate, e.EndDate, e.Description, tech)
	}
	return w.replace(ctx, profile.CollectionExperience, ins, len(items))
}

func (w *txWriter) ReplaceEducation(ctx context.Context, items []profile.Education) error {
	ins := psqlProfile.Insert("education").
		Columns("profile_id", "sort_order", "institution_name", "degree", "field_of_study", "start_date", "end_date", "description")
	for i, e := range items {
		ins = ins.Values(w.profileID, i, e.InstitutionName, e.Degree, e.FieldOfStudy, e.StartDate, e.EndDate, e.Description)
	}
	return w.replace(ctx, profile.CollectionEducation, ins, len(items))
}

func (w *txWriter) ReplaceProjects(ctx context.Context, items []profile.Project) error {
	ins := psqlProfile.Insert("projects").
		Columns("profile_id", "sort_order", "project_name", "description", "github_url", "demo_url", "technologies",
			"image_url", "start_date", "end_date")
	for i, p := range items {
		tech, err := encodeTechnologies(p.Technologies)
		if err != nil {
			return apperror.NewInternal("failed to marshal project technologies", err)
		}
		ins = ins.Values(w.profileID, i, p.Name, p.Description, p.GithubURL, p.DemoURL, tech, p.ImageURL, p.StartDate, p.EndDate)
	}
	return w.replace(ctx, profile.CollectionProjects, ins, len(items))
}

// replace deletes every row of the collection, then runs ins when there is anything to insert.
func (w *txWriter) replace(ctx context.Context, c profile.Collection, ins sq.InsertBuilder, n int) error {
	sqlStr, args, err := psqlProfile.Delete(string(c)).Where(sq.Eq{"profile_id": w.profileID}).ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build delete for "+string(c), err)
	}
	if _, err := w.tx.Exec(ctx, sqlStr, args...); err != nil {
		return apperror.NewInternal("failed to clear "+string(c), err)
	}

	if n == 0 {
		return nil
	}

	sqlStr, args, err = ins.ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build insert for "+string(c), err)
	}
	if _, err := w.tx.Exec(ctx, sqlStr, args...); err != nil {
		return apperror.NewInternal("failed to insert "+string(c), err)
	}
	return nil
}
