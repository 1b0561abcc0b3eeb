package repository

import (
	"github.com/sabaqhub/sabaq/internal/model"
	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(task *model.Task) error
	CreateTableCells(cells []model.TableCell) error
	FindByIDWithContent(id uint) (*model.Task, error)
	FindTableCells(taskID uint) ([]model.TableCell, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(task *model.Task) error {
	// Create with associations covers nested content except table cells,
	// which need the generated row/column ids first.
	return r.db.Create(task).Error
}

func (r *taskRepository) CreateTableCells(cells []model.TableCell) error {
	if len(cells) == 0 {
		return nil
	}
	return r.db.Create(&cells).Error
}

func (r *taskRepository) FindByIDWithContent(id uint) (*model.Task, error) {
	var task model.Task
	err := r.db.
		Preload("Videos").
		Preload("Written").
		Preload("TextGaps").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.\"order\" ASC")
		}).
		Preload("Questions.Options").
		Preload("Columns.Items").
		Preload("TableRows", func(db *gorm.DB) *gorm.DB {
			return db.Order("table_rows.\"order\" ASC")
		}).
		Preload("TableColumns", func(db *gorm.DB) *gorm.DB {
			return db.Order("table_columns.\"order\" ASC")
		}).
		First(&task, id).Error
	return &task, err
}

func (r *taskRepository) FindTableCells(taskID uint) ([]model.TableCell, error) {
	var cells []model.TableCell
	err := r.db.
		Joins("JOIN table_rows ON table_rows.id = table_cells.row_id").
		Where("table_rows.task_id = ?", taskID).
		Find(&cells).Error
	return cells, err
}
