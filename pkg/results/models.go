package results

import "time"

// Well-known parameter names copied onto the Run row for listing.
const (
	ParamLibrary = "library"
	ParamGraph   = "graph"
)

// Run is one persisted experiment invocation.
type Run struct {
	ID         string      `gorm:"primaryKey;size:36" json:"id" yaml:"id"`
	Library    string      `gorm:"size:255;index" json:"library" yaml:"library"`
	Graph      string      `gorm:"type:text" json:"graph" yaml:"graph"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at" yaml:"created_at"`
	Parameters []Parameter `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// TableName returns the table name for Run.
func (Run) TableName() string {
	return "runs"
}

// Parameter is one name/value pair of a run's configuration snapshot.
type Parameter struct {
	RunID string `gorm:"primaryKey;size:36" json:"run_id" yaml:"run_id"`
	Name  string `gorm:"primaryKey;size:64" json:"name" yaml:"name"`
	Value string `gorm:"type:text" json:"value" yaml:"value"`
}

// TableName returns the table name for Parameter.
func (Parameter) TableName() string {
	return "parameters"
}

// AllModels returns the models managed by AutoMigrate.
func AllModels() []any {
	return []any{&Run{}, &Parameter{}}
}
