package models

import (
	"time"

	"blendshape-presets/core/reconcile"
)

// Preset is the catalog row describing a stored bundle.
type Preset struct {
	ID             uint      `gorm:"column:id;primaryKey" json:"id"`
	Name           string    `gorm:"column:name;type:varchar(128);uniqueIndex;not null" json:"name"`
	RootObjectName string    `gorm:"column:root_object_name;type:varchar(255)" json:"rootObjectName"`
	MeshCount      int       `gorm:"column:mesh_count" json:"meshCount"`
	ChannelCount   int       `gorm:"column:channel_count" json:"channelCount"`
	ObjectKey      string    `gorm:"column:object_key;type:varchar(512)" json:"objectKey"`
	Size           int64     `gorm:"column:size" json:"size"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName overrides the default table name.
func (Preset) TableName() string {
	return "blendshape_presets"
}

// Describe fills the bundle-derived fields of p.
func (p *Preset) Describe(b *reconcile.Bundle) {
	p.RootObjectName = b.RootObjectName
	p.MeshCount = len(b.Meshes)
	p.ChannelCount = b.TotalChannels()
}
