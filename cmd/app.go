package cmd

import (
	"gorm.io/gorm"

	config "todo-folders.com/todo-folders/internal/configs"
	"todo-folders.com/todo-folders/internal/constants"
	"todo-folders.com/todo-folders/internal/reminders"
	repository "todo-folders.com/todo-folders/internal/repositories"
	"todo-folders.com/todo-folders/internal/services"
)

// app holds everything the commands share. close releases the reminder
// backend connection.
type app struct {
	cfg     config.Config
	db      *gorm.DB
	table   reminders.TriggerTable
	todos   *services.TodoService
	folders *services.FolderService
	users   *services.UserService
	close   func()
}

func newApp() *app {
	cfg := config.Load()
	db := config.NewDatabaseClient(cfg.DatabaseDSN)
	table, closeTable := config.NewTriggerTable(cfg)

	manager := reminders.NewManager(table, constants.ReminderTitle)
	todoRepo := repository.NewTodoRepository(db)
	folderRepo := repository.NewFolderRepository(db)

	return &app{
		cfg:     cfg,
		db:      db,
		table:   table,
		todos:   services.NewTodoService(todoRepo, folderRepo, manager),
		folders: services.NewFolderService(folderRepo, todoRepo, manager),
		users:   services.NewUserService(repository.NewUserRepository(db)),
		close:   closeTable,
	}
}
