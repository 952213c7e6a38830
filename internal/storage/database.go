package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/pixil98/go-escape/internal/game"
)

// ErrDatabaseClosed is returned by every call made after Close.
var ErrDatabaseClosed = errors.New("database closed")

type flagRow struct {
	SaveSlot  int    `gorm:"primaryKey;autoIncrement:false"`
	FlagKey   string `gorm:"primaryKey;size:128"`
	Value     bool
	UpdatedAt time.Time
}

func (flagRow) TableName() string { return "flags" }

type itemRow struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	SaveSlot  int    `gorm:"not null;uniqueIndex:idx_item_name"`
	Name      string `gorm:"not null;size:128;uniqueIndex:idx_item_name"`
	SlotIndex int    `gorm:"not null"`
	Collected bool
	Used      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (itemRow) TableName() string { return "inventory_items" }

func (r itemRow) item() game.InventoryItem {
	return game.InventoryItem{
		Id:        r.ID,
		Name:      game.ItemName(r.Name),
		Slot:      r.SlotIndex,
		Collected: r.Collected,
		Used:      r.Used,
	}
}

type settingsRow struct {
	SaveSlot           int `gorm:"primaryKey;autoIncrement:false"`
	Archive            int
	BackPage           string
	SettingBackPage    string
	LastActivePage     string
	MusicEnabled       bool
	MusicVolume        float64
	SoundEffectVolume  float64
	TextSize           float64
	PlayTimeSeconds    int64
	LastSessionStartAt int64
	UpdatedAt          time.Time
}

func (settingsRow) TableName() string { return "settings" }

func (r settingsRow) settings() game.Settings {
	return game.Settings{
		Slot:               r.SaveSlot,
		Archive:            r.Archive,
		BackPage:           game.Page(r.BackPage),
		SettingBackPage:    game.Page(r.SettingBackPage),
		LastActivePage:     game.Page(r.LastActivePage),
		MusicEnabled:       r.MusicEnabled,
		MusicVolume:        r.MusicVolume,
		SoundEffectVolume:  r.SoundEffectVolume,
		TextSize:           r.TextSize,
		PlayTimeSeconds:    r.PlayTimeSeconds,
		LastSessionStartAt: r.LastSessionStartAt,
	}
}

func newSettingsRow(s game.Settings) settingsRow {
	return settingsRow{
		SaveSlot:           s.Slot,
		Archive:            s.Archive,
		BackPage:           string(s.BackPage),
		SettingBackPage:    string(s.SettingBackPage),
		LastActivePage:     string(s.LastActivePage),
		MusicEnabled:       s.MusicEnabled,
		MusicVolume:        s.MusicVolume,
		SoundEffectVolume:  s.SoundEffectVolume,
		TextSize:           s.TextSize,
		PlayTimeSeconds:    s.PlayTimeSeconds,
		LastSessionStartAt: s.LastSessionStartAt,
	}
}

// Database is the embedded sqlite file holding every save slot. The file is
// opened on first use and stays open until Close.
type Database struct {
	path    string
	verbose bool

	mu     sync.Mutex
	db     *gorm.DB
	closed bool
}

func NewDatabase(path string, opts ...DatabaseOpt) (*Database, error) {
	if path == "" {
		return nil, fmt.Errorf("'path' is required")
	}
	d := &Database{path: path}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *Database) conn(ctx context.Context) (*gorm.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrDatabaseClosed
	}
	if d.db != nil {
		return d.db.WithContext(ctx), nil
	}

	logMode := logger.Silent
	if d.verbose {
		logMode = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(d.path), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database %q: %w", d.path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql handle: %w", err)
	}
	// sqlite allows one writer; a single connection keeps writers queued
	// instead of failing with SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&flagRow{}, &itemRow{}, &settingsRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	d.db = db
	return d.db.WithContext(ctx), nil
}

// Close closes the database. A database that was never opened closes cleanly.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	if d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	d.db = nil
	return sqlDB.Close()
}

// GetFlag returns the flag value and whether it was stored.
func (d *Database) GetFlag(ctx context.Context, slot int, key game.FlagKey) (bool, bool, error) {
	db, err := d.conn(ctx)
	if err != nil {
		return false, false, err
	}

	var row flagRow
	err = db.Where("save_slot = ? AND flag_key = ?", slot, key.String()).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("reading flag %q: %w", key, err)
	}
	return row.Value, true, nil
}

func (d *Database) SetFlag(ctx context.Context, slot int, key game.FlagKey, value bool) error {
	db, err := d.conn(ctx)
	if err != nil {
		return err
	}

	row := flagRow{SaveSlot: slot, FlagKey: key.String(), Value: value}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "save_slot"}, {Name: "flag_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("writing flag %q: %w", key, err)
	}
	return nil
}

func (d *Database) ListFlags(ctx context.Context, slot int) ([]game.Flag, error) {
	db, err := d.conn(ctx)
	if err != nil {
		return nil, err
	}

	var rows []flagRow
	if err := db.Where("save_slot = ?", slot).Order("flag_key").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing flags: %w", err)
	}

	flags := make([]game.Flag, 0, len(rows))
	for _, r := range rows {
		flags = append(flags, game.Flag{Key: game.FlagKey(r.FlagKey), Value: r.Value})
	}
	return flags, nil
}

func (d *Database) DeleteFlags(ctx context.Context, slot int) error {
	db, err := d.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Where("save_slot = ?", slot).Delete(&flagRow{}).Error; err != nil {
		return fmt.Errorf("deleting flags: %w", err)
	}
	return nil
}

func (d *Database) ListItems(ctx context.Context, slot int) ([]game.InventoryItem, error) {
	db, err := d.conn(ctx)
	if err != nil {
		return nil, err
	}

	var rows []itemRow
	if err := db.Where("save_slot = ?", slot).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	items := make([]game.InventoryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.item())
	}
	return items, nil
}

// GetItem returns the named item and whether it exists.
func (d *Database) GetItem(ctx context.Context, slot int, name game.ItemName) (game.InventoryItem, bool, error) {
	db, err := d.conn(ctx)
	if err != nil {
		return game.InventoryItem{}, false, err
	}

	var row itemRow
	err = db.Where("save_slot = ? AND name = ?", slot, name.String()).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return game.InventoryItem{}, false, nil
	}
	if err != nil {
		return game.InventoryItem{}, false, fmt.Errorf("reading item %q: %w", name, err)
	}
	return row.item(), true, nil
}

// SaveItem inserts the item or updates the row with the same name, and
// returns the stored row.
func (d *Database) SaveItem(ctx context.Context, slot int, item game.InventoryItem) (game.InventoryItem, error) {
	db, err := d.conn(ctx)
	if err != nil {
		return game.InventoryItem{}, err
	}

	row := itemRow{
		SaveSlot:  slot,
		Name:      item.Name.String(),
		SlotIndex: item.Slot,
		Collected: item.Collected,
		Used:      item.Used,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "save_slot"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"slot_index", "collected", "used", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return game.InventoryItem{}, fmt.Errorf("writing item %q: %w", item.Name, err)
	}

	stored, ok, err := d.GetItem(ctx, slot, item.Name)
	if err != nil {
		return game.InventoryItem{}, err
	}
	if !ok {
		return game.InventoryItem{}, fmt.Errorf("item %q missing after write", item.Name)
	}
	return stored, nil
}

func (d *Database) DeleteItem(ctx context.Context, slot int, name game.ItemName) error {
	db, err := d.conn(ctx)
	if err != nil {
		return err
	}
	err = db.Where("save_slot = ? AND name = ?", slot, name.String()).Delete(&itemRow{}).Error
	if err != nil {
		return fmt.Errorf("deleting item %q: %w", name, err)
	}
	return nil
}

func (d *Database) DeleteItems(ctx context.Context, slot int) error {
	db, err := d.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Where("save_slot = ?", slot).Delete(&itemRow{}).Error; err != nil {
		return fmt.Errorf("deleting items: %w", err)
	}
	return nil
}

// GetSettings returns the settings record and whether it exists.
func (d *Database) GetSettings(ctx context.Context, slot int) (game.Settings, bool, error) {
	db, err := d.conn(ctx)
	if err != nil {
		return game.Settings{}, false, err
	}

	var row settingsRow
	err = db.Where("save_slot = ?", slot).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return game.Settings{}, false, nil
	}
	if err != nil {
		return game.Settings{}, false, fmt.Errorf("reading settings %d: %w", slot, err)
	}
	return row.settings(), true, nil
}

// SaveSettings writes the whole record, inserting it if needed.
func (d *Database) SaveSettings(ctx context.Context, s game.Settings) error {
	db, err := d.conn(ctx)
	if err != nil {
		return err
	}

	row := newSettingsRow(s)
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "save_slot"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("writing settings %d: %w", s.Slot, err)
	}
	return nil
}

func (d *Database) DeleteSettings(ctx context.Context, slot int) error {
	db, err := d.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Where("save_slot = ?", slot).Delete(&settingsRow{}).Error; err != nil {
		return fmt.Errorf("deleting settings %d: %w", slot, err)
	}
	return nil
}
