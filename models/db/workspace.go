package dbmodels

type Workspace struct {
	BaseModel
	OwnerID    uint64   `gorm:"index"`
	Name       string   `gorm:"type:varchar(30);not null"`
	UUID       string   `gorm:"type:varchar(22);uniqueIndex;not null"`
	AccessCode string   `gorm:"type:varchar(10);not null"`
	Routine    *Routine `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE"`
}

type WorkspaceComposition struct {
	BaseModel
	WorkspaceID     uint64         `gorm:"uniqueIndex:idx_workspace_package;not null"`
	SurveyPackageID uint64         `gorm:"uniqueIndex:idx_workspace_package;not null"`
	SurveyPackage   *SurveyPackage `gorm:"constraint:OnDelete:CASCADE"`
}

type Routine struct {
	BaseModel
	WorkspaceID uint64          `gorm:"uniqueIndex;not null"`
	KickOffID   uint64          `gorm:"index;not null"` // Пакет для вводного опроса
	Duration    int             `gorm:"not null"`
	Details     []RoutineDetail `gorm:"foreignKey:RoutineID;constraint:OnDelete:CASCADE"`
}

type RoutineDetail struct {
	BaseModel
	RoutineID       uint64 `gorm:"uniqueIndex:idx_routine_detail;not null"`
	NthDay          int    `gorm:"uniqueIndex:idx_routine_detail;not null"`
	Time            string `gorm:"type:varchar(5);uniqueIndex:idx_routine_detail;not null"` // ЧЧ:ММ
	SurveyPackageID uint64 `gorm:"uniqueIndex:idx_routine_detail;not null"`
}
