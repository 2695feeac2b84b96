package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/domain/model"
)

const intakeColumns = `id, order_id, submission_token, first_name, last_name, email, phone, linkedin_url, resume_path, job_url, job_description, additional_notes, created_at`

const intakeJoinColumns = `i.id, i.order_id, i.submission_token, i.first_name, i.last_name, i.email, i.phone, i.linkedin_url, i.resume_path, i.job_url, i.job_description, i.additional_notes, i.created_at,
       o.id, o.user_id, o.customer_email, o.package_id, o.package_name, o.amount, o.currency, o.checkout_session_id, o.status, o.created_at`

func (r *intakeRepository) Create(ctx context.Context, intake *model.Intake) error {
	if intake.ID == "" {
		intake.ID = uuid.NewString()
	}
	const query = `INSERT INTO intake_forms (id, order_id, submission_token, first_name, last_name, email, phone, linkedin_url, resume_path, job_url, job_description, additional_notes)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
                   RETURNING created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		intake.ID, intake.OrderID, intake.SubmissionToken, intake.FirstName, intake.LastName,
		intake.Email, intake.Phone, intake.LinkedInURL, intake.ResumePath, intake.JobURL,
		intake.JobDescription, intake.AdditionalNotes,
	).Scan(&intake.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return domainErrors.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *intakeRepository) GetByID(ctx context.Context, id string) (*model.IntakeWithOrder, error) {
	const query = `SELECT ` + intakeJoinColumns + `
                   FROM intake_forms i JOIN orders o ON o.id = i.order_id
                   WHERE i.id=$1`
	var row model.IntakeWithOrder
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(joinDest(&row)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *intakeRepository) ListWithOrders(ctx context.Context) ([]model.IntakeWithOrder, error) {
	const query = `SELECT ` + intakeJoinColumns + `
                   FROM intake_forms i JOIN orders o ON o.id = i.order_id
                   ORDER BY i.created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.IntakeWithOrder
	for rows.Next() {
		var row model.IntakeWithOrder
		if err := rows.Scan(joinDest(&row)...); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *intakeRepository) Update(ctx context.Context, id string, update model.IntakeUpdate) (*model.Intake, error) {
	fields := []struct {
		column string
		value  *string
	}{
		{"first_name", update.FirstName},
		{"last_name", update.LastName},
		{"email", update.Email},
		{"phone", update.Phone},
		{"linkedin_url", update.LinkedInURL},
		{"job_description", update.JobDescription},
		{"additional_notes", update.AdditionalNotes},
	}

	var (
		sets []string
		args []any
	)
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		args = append(args, *f.value)
		sets = append(sets, fmt.Sprintf("%s=$%d", f.column, len(args)))
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("update intake: no fields to change")
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE intake_forms SET %s WHERE id=$%d RETURNING %s`, strings.Join(sets, ", "), len(args), intakeColumns)

	var intake model.Intake
	if err := r.storage.pool.QueryRow(ctx, query, args...).Scan(intakeDest(&intake)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &intake, nil
}

func (r *intakeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM intake_forms WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func intakeDest(i *model.Intake) []any {
	return []any{
		&i.ID, &i.OrderID, &i.SubmissionToken, &i.FirstName, &i.LastName, &i.Email, &i.Phone,
		&i.LinkedInURL, &i.ResumePath, &i.JobURL, &i.JobDescription, &i.AdditionalNotes, &i.CreatedAt,
	}
}

func joinDest(row *model.IntakeWithOrder) []any {
	return append(intakeDest(&row.Intake), orderDest(&row.Order)...)
}
