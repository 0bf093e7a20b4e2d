package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nexwms-backend/internal/domains/counting/model"
	invmodel "nexwms-backend/internal/domains/inventory/model"
	inventoryrepo "nexwms-backend/internal/domains/inventory/repository"
	"nexwms-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// CreateSystemErrorTaskTx opens an audit session against a suspect bin from
// inside another domain's transaction. Short picks use it so the discrepancy
// investigation commits atomically with the stock release.
func CreateSystemErrorTaskTx(ctx context.Context, tx pgx.Tx, inventoryID *uuid.UUID, expectedQty int) (string, error) {
	ref := fmt.Sprintf("SYS-ERR-%04d", 1000+rand.Intn(9000))
	sessionID := uuid.New()

	_, err := tx.Exec(ctx, `
		INSERT INTO cycle_count_sessions (id, reference, status, device_id)
		VALUES ($1, $2, $3, $4)`,
		sessionID, ref, model.SessionInProgress, model.DeviceSystemAuto)
	if err != nil {
		return "", fmt.Errorf("failed to create error session: %w", err)
	}

	if inventoryID != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO cycle_count_tasks (id, session_id, inventory_id, expected_qty, status)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), sessionID, *inventoryID, expectedQty, model.TaskPending)
		if err != nil {
			return "", fmt.Errorf("failed to create error task: %w", err)
		}
	}
	return ref, nil
}

// createSession inserts the session and one task per candidate inventory
// row, snapshotting current quantities.
func createSession(ctx context.Context, tx pgx.Tx, session *model.CycleCountSession, candidateQuery string, args ...interface{}) error {
	rows, err := tx.Query(ctx, candidateQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to select count candidates: %w", err)
	}
	defer rows.Close()

	var tasks []model.CycleCountTask
	for rows.Next() {
		var t model.CycleCountTask
		if err := rows.Scan(&t.InventoryID, &t.SKU, &t.LocationCode, &t.ExpectedQty); err != nil {
			return err
		}
		t.Status = model.TaskPending
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(tasks) == 0 {
		return model.ErrNothingToCount
	}

	session.ID = uuid.New()
	session.Status = model.SessionInProgress
	err = tx.QueryRow(ctx, `
		INSERT INTO cycle_count_sessions (id, reference, status, device_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		session.ID, session.Reference, session.Status, session.DeviceID,
	).Scan(&session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create count session: %w", err)
	}

	for i := range tasks {
		tasks[i].ID = uuid.New()
		tasks[i].SessionID = session.ID
		_, err := tx.Exec(ctx, `
			INSERT INTO cycle_count_tasks (id, session_id, inventory_id, expected_qty, status)
			VALUES ($1, $2, $3, $4, $5)`,
			tasks[i].ID, session.ID, tasks[i].InventoryID, tasks[i].ExpectedQty, tasks[i].Status)
		if err != nil {
			return fmt.Errorf("failed to create count task: %w", err)
		}
	}

	session.Tasks = tasks
	return nil
}

func (r *postgresRepository) CreateRandomSession(ctx context.Context, aislePrefix string, limit int) (*model.CycleCountSession, error) {
	session := &model.CycleCountSession{
		Reference: fmt.Sprintf("CC-%05d", 10000+rand.Intn(90000)),
	}

	query := `
		SELECT inv.id, inv.sku, inv.location_code, inv.quantity
		FROM inventories inv
		WHERE inv.quantity > 0`
	args := []interface{}{}
	if aislePrefix != "" {
		query += ` AND inv.location_code LIKE $1 || '%'`
		args = append(args, aislePrefix)
	}
	query += fmt.Sprintf(` ORDER BY random() LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return createSession(ctx, tx, session, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (r *postgresRepository) CreateLocationSession(ctx context.Context, locationCode string) (*model.CycleCountSession, error) {
	deviceID := model.DeviceManualTrigger
	session := &model.CycleCountSession{
		Reference: fmt.Sprintf("CC-LOC-%s-%04d", locationCode, 1000+rand.Intn(9000)),
		DeviceID:  &deviceID,
	}

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return createSession(ctx, tx, session, `
			SELECT inv.id, inv.sku, inv.location_code, inv.quantity
			FROM inventories inv
			WHERE inv.location_code = $1 AND inv.quantity > 0
			ORDER BY inv.id ASC`, locationCode)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// SubmitCount records a physical count. Variance is measured against the
// live quantity under lock, not the creation-time snapshot, so counts stay
// honest when stock moved between task creation and counting.
func (r *postgresRepository) SubmitCount(ctx context.Context, taskID uuid.UUID, countedQty int, actor string) (*model.SubmitCountResult, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.SubmitCountResult, error) {
		var task model.CycleCountTask
		err := tx.QueryRow(ctx, `
			SELECT id, session_id, inventory_id, status
			FROM cycle_count_tasks
			WHERE id = $1
			FOR UPDATE`, taskID,
		).Scan(&task.ID, &task.SessionID, &task.InventoryID, &task.Status)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewTaskNotFoundError(taskID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to lock task: %w", err)
		}
		if task.Status == model.TaskCounted {
			return nil, model.ErrTaskAlreadyCounted
		}

		var sku, location string
		var liveQty, reservedQty int
		err = tx.QueryRow(ctx, `
			SELECT sku, location_code, quantity, reserved_quantity
			FROM inventories
			WHERE id = $1
			FOR UPDATE`, task.InventoryID,
		).Scan(&sku, &location, &liveQty, &reservedQty)
		if err != nil {
			return nil, fmt.Errorf("failed to lock counted bin: %w", err)
		}

		variance, correctedReserved := model.ReconcileCount(liveQty, reservedQty, countedQty)

		_, err = tx.Exec(ctx, `
			UPDATE cycle_count_tasks
			SET counted_qty = $2, variance = $3, status = $4
			WHERE id = $1`, taskID, countedQty, variance, model.TaskCounted)
		if err != nil {
			return nil, fmt.Errorf("failed to complete task: %w", err)
		}

		if variance != 0 {
			_, err = tx.Exec(ctx, `
				UPDATE inventories
				SET quantity = $2,
				    reserved_quantity = $3,
				    version = version + 1
				WHERE id = $1`, task.InventoryID, countedQty, correctedReserved)
			if err != nil {
				return nil, fmt.Errorf("failed to correct bin: %w", err)
			}
			if err := inventoryrepo.InsertJournalTx(ctx, tx, invmodel.ActionAdjust,
				sku, location, variance, nil, actor); err != nil {
				return nil, err
			}
		}

		var pending int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM cycle_count_tasks WHERE session_id = $1 AND status = $2`,
			task.SessionID, model.TaskPending).Scan(&pending)
		if err != nil {
			return nil, err
		}
		sessionStatus := model.SessionInProgress
		if pending == 0 {
			sessionStatus = model.SessionCompleted
			if _, err := tx.Exec(ctx,
				`UPDATE cycle_count_sessions SET status = $2 WHERE id = $1`,
				task.SessionID, sessionStatus); err != nil {
				return nil, fmt.Errorf("failed to complete session: %w", err)
			}
		}

		message := "Match"
		if variance != 0 {
			message = fmt.Sprintf("Variance of %d recorded.", variance)
		}
		return &model.SubmitCountResult{
			Variance:      variance,
			Message:       message,
			SessionStatus: sessionStatus,
		}, nil
	})
}

func (r *postgresRepository) GetSession(ctx context.Context, id uuid.UUID) (*model.CycleCountSession, error) {
	var s model.CycleCountSession
	err := r.pool.QueryRow(ctx, `
		SELECT id, reference, status, device_id, created_at
		FROM cycle_count_sessions WHERE id = $1`, id,
	).Scan(&s.ID, &s.Reference, &s.Status, &s.DeviceID, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: id=%s", model.ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.session_id, t.inventory_id, inv.sku, inv.location_code,
		       t.expected_qty, t.counted_qty, t.variance, t.status
		FROM cycle_count_tasks t
		JOIN inventories inv ON inv.id = t.inventory_id
		WHERE t.session_id = $1
		ORDER BY inv.location_code ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t model.CycleCountTask
		if err := rows.Scan(&t.ID, &t.SessionID, &t.InventoryID, &t.SKU, &t.LocationCode,
			&t.ExpectedQty, &t.CountedQty, &t.Variance, &t.Status); err != nil {
			return nil, err
		}
		s.Tasks = append(s.Tasks, t)
	}
	return &s, rows.Err()
}

func (r *postgresRepository) ListSessions(ctx context.Context, status string, offset, limit int) ([]model.CycleCountSession, int, error) {
	where := ""
	args := []interface{}{}
	if status != "" {
		where = " WHERE status = $1"
		args = append(args, status)
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM cycle_count_sessions"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	query := `SELECT id, reference, status, device_id, created_at FROM cycle_count_sessions` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.CycleCountSession
	for rows.Next() {
		var s model.CycleCountSession
		if err := rows.Scan(&s.ID, &s.Reference, &s.Status, &s.DeviceID, &s.CreatedAt); err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, s)
	}
	return sessions, total, rows.Err()
}
