// Package postgresql реализует хранилище на основе PostgreSQL.
// Схема создаётся миграциями при подключении; уникального ограничения
// на пару (date, time) в таблице appointments нет.
package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	// Регистрация драйвера pgx для использования с database/sql в миграциях.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/barbershop/internal/migrations"
	"github.com/magabrotheeeer/barbershop/internal/models"
	"github.com/magabrotheeeer/barbershop/internal/storage"
)

// Storage инкапсулирует пул соединений с PostgreSQL.
type Storage struct {
	pool *pgxpool.Pool
}

// New подключается к PostgreSQL, применяет миграции и возвращает хранилище.
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.postgresql.New"

	if err := migrate(storageConnectionString); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cfg, err := pgxpool.ParseConfig(storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{pool: pool}, nil
}

func migrate(storageConnectionString string) error {
	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()
	if err := db.Ping(); err != nil {
		return err
	}
	return migrations.Run(db)
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

const appointmentColumns = `id, "date", "time", name, email, phone, service, notes, completed, created_at`

func scanAppointment(row pgx.CollectableRow) (*models.Appointment, error) {
	var a models.Appointment
	err := row.Scan(&a.ID, &a.Date, &a.Time, &a.Name, &a.Email, &a.Phone, &a.Service,
		&a.Notes, &a.Completed, &a.CreatedAt)
	return &a, err
}

func scanTestimonial(row pgx.CollectableRow) (*models.Testimonial, error) {
	var t models.Testimonial
	err := row.Scan(&t.ID, &t.Name, &t.Rating, &t.Comment, &t.Approved, &t.CreatedAt)
	return &t, err
}

func scanContactMessage(row pgx.CollectableRow) (*models.ContactMessage, error) {
	var m models.ContactMessage
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt)
	return &m, err
}

func scanService(row pgx.CollectableRow) (*models.Service, error) {
	var svc models.Service
	err := row.Scan(&svc.ID, &svc.Name, &svc.Description, &svc.Price, &svc.Icon)
	return &svc, err
}

func scanUser(row pgx.CollectableRow) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Password)
	return &u, err
}

// collectOne выполняет запрос, ожидающий одну строку, и переводит pgx.ErrNoRows в storage.ErrNotFound.
func collectOne[T any](ctx context.Context, s *Storage, op string, scan func(pgx.CollectableRow) (*T, error), query string, args ...any) (*T, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := pgx.CollectExactlyOneRow(rows, scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

func collectAll[T any](ctx context.Context, s *Storage, op string, scan func(pgx.CollectableRow) (*T, error), query string, args ...any) ([]*T, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if res == nil {
		res = []*T{}
	}
	return res, nil
}

// GetUser возвращает пользователя по ID.
func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	return collectOne(ctx, s, "storage.postgresql.GetUser", scanUser,
		`SELECT id, username, password FROM users WHERE id = $1`, id)
}

// GetUserByUsername возвращает пользователя по имени.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return collectOne(ctx, s, "storage.postgresql.GetUserByUsername", scanUser,
		`SELECT id, username, password FROM users WHERE username = $1 ORDER BY id LIMIT 1`, username)
}

// CreateUser сохраняет пользователя.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	return collectOne(ctx, s, "storage.postgresql.CreateUser", scanUser,
		`INSERT INTO users (username, password) VALUES ($1, $2)
		 RETURNING id, username, password`, user.Username, user.Password)
}

// CreateAppointment сохраняет новую запись.
func (s *Storage) CreateAppointment(ctx context.Context, in models.AppointmentInput) (*models.Appointment, error) {
	return collectOne(ctx, s, "storage.postgresql.CreateAppointment", scanAppointment,
		`INSERT INTO appointments ("date", "time", name, email, phone, service, notes, completed, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, NOW())
		 RETURNING `+appointmentColumns,
		in.Date, in.Time, in.Name, in.Email, in.Phone, in.Service, in.Notes)
}

// GetAppointments возвращает все записи, упорядоченные по дате и времени.
func (s *Storage) GetAppointments(ctx context.Context) ([]*models.Appointment, error) {
	return collectAll(ctx, s, "storage.postgresql.GetAppointments", scanAppointment,
		`SELECT `+appointmentColumns+` FROM appointments ORDER BY "date", "time", id`)
}

// GetAppointmentByID возвращает запись по ID.
func (s *Storage) GetAppointmentByID(ctx context.Context, id int) (*models.Appointment, error) {
	return collectOne(ctx, s, "storage.postgresql.GetAppointmentByID", scanAppointment,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
}

// GetAppointmentsByDate возвращает записи на указанную дату, упорядоченные по времени.
func (s *Storage) GetAppointmentsByDate(ctx context.Context, date string) ([]*models.Appointment, error) {
	return collectAll(ctx, s, "storage.postgresql.GetAppointmentsByDate", scanAppointment,
		`SELECT `+appointmentColumns+` FROM appointments WHERE "date" = $1 ORDER BY "time", id`, date)
}

// DeleteAppointment удаляет запись по ID.
func (s *Storage) DeleteAppointment(ctx context.Context, id int) (bool, error) {
	const op = "storage.postgresql.DeleteAppointment"

	tag, err := s.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateAppointmentStatus меняет признак выполнения записи.
func (s *Storage) UpdateAppointmentStatus(ctx context.Context, id int, completed bool) (*models.Appointment, error) {
	return collectOne(ctx, s, "storage.postgresql.UpdateAppointmentStatus", scanAppointment,
		`UPDATE appointments SET completed = $1 WHERE id = $2 RETURNING `+appointmentColumns, completed, id)
}

// CreateTestimonial сохраняет отзыв с approved=true.
func (s *Storage) CreateTestimonial(ctx context.Context, in models.TestimonialInput) (*models.Testimonial, error) {
	return collectOne(ctx, s, "storage.postgresql.CreateTestimonial", scanTestimonial,
		`INSERT INTO testimonials (name, rating, comment, approved, created_at)
		 VALUES ($1, $2, $3, TRUE, NOW())
		 RETURNING id, name, rating, comment, approved, created_at`,
		in.Name, in.Rating, in.Comment)
}

// GetApprovedTestimonials возвращает одобренные отзывы, новые первыми.
func (s *Storage) GetApprovedTestimonials(ctx context.Context) ([]*models.Testimonial, error) {
	return collectAll(ctx, s, "storage.postgresql.GetApprovedTestimonials", scanTestimonial,
		`SELECT id, name, rating, comment, approved, created_at
		 FROM testimonials
		 WHERE approved = TRUE
		 ORDER BY created_at DESC, id DESC`)
}

// CreateContactMessage сохраняет сообщение обратной связи.
func (s *Storage) CreateContactMessage(ctx context.Context, in models.ContactMessageInput) (*models.ContactMessage, error) {
	return collectOne(ctx, s, "storage.postgresql.CreateContactMessage", scanContactMessage,
		`INSERT INTO contact_messages (name, email, message, created_at)
		 VALUES ($1, $2, $3, NOW())
		 RETURNING id, name, email, message, created_at`,
		in.Name, in.Email, in.Message)
}

// GetContactMessages возвращает все сообщения, новые первыми.
func (s *Storage) GetContactMessages(ctx context.Context) ([]*models.ContactMessage, error) {
	return collectAll(ctx, s, "storage.postgresql.GetContactMessages", scanContactMessage,
		`SELECT id, name, email, message, created_at FROM contact_messages ORDER BY created_at DESC, id DESC`)
}

// DeleteContactMessage удаляет сообщение по ID.
func (s *Storage) DeleteContactMessage(ctx context.Context, id int) (bool, error) {
	const op = "storage.postgresql.DeleteContactMessage"

	tag, err := s.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetServices возвращает прайс-лист.
func (s *Storage) GetServices(ctx context.Context) ([]*models.Service, error) {
	return collectAll(ctx, s, "storage.postgresql.GetServices", scanService,
		`SELECT id, name, description, price, icon FROM services ORDER BY id`)
}

// Seed в одной транзакции заполняет пустые таблицы пользователей, услуг и отзывов.
func (s *Storage) Seed(ctx context.Context, admin models.User) error {
	const op = "storage.postgresql.Seed"

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	empty := func(table string) (bool, error) {
		var exists bool
		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+`)`).Scan(&exists)
		return !exists, err
	}

	if ok, err := empty("users"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	} else if ok {
		if _, err := tx.Exec(ctx, `INSERT INTO users (username, password) VALUES ($1, $2)`,
			admin.Username, admin.Password); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if ok, err := empty("services"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	} else if ok {
		batch := &pgx.Batch{}
		for _, svc := range storage.SeedServices() {
			batch.Queue(`INSERT INTO services (name, description, price, icon) VALUES ($1, $2, $3, $4)`,
				svc.Name, svc.Description, svc.Price, svc.Icon)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if ok, err := empty("testimonials"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	} else if ok {
		batch := &pgx.Batch{}
		for _, t := range storage.SeedTestimonials(time.Now().UTC()) {
			batch.Queue(`INSERT INTO testimonials (name, rating, comment, approved, created_at) VALUES ($1, $2, $3, $4, $5)`,
				t.Name, t.Rating, t.Comment, t.Approved, t.CreatedAt)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
