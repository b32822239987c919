package repositoryImp

import (
	"gorm.io/gorm"

	"webplanner/entities"
	"webplanner/pkg/kb/repository"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.KBRepository { return &repo{db} }

func (r *repo) CreateDoc(d *entities.ResearchDoc) error { return r.db.Create(d).Error }

func (r *repo) BulkInsertChunks(cs []entities.ResearchChunk) error { return r.db.Create(&cs).Error }

func (r *repo) ListDocs() ([]entities.ResearchDoc, error) {
	var ds []entities.ResearchDoc
	return ds, r.db.Order("doc_id DESC").Find(&ds).Error
}

func (r *repo) AllChunks() ([]entities.ResearchChunk, error) {
	var cs []entities.ResearchChunk
	return cs, r.db.Find(&cs).Error
}

func (r *repo) DocsByIDs(ids []uint) (map[uint]entities.ResearchDoc, error) {
	if len(ids) == 0 {
		return map[uint]entities.ResearchDoc{}, nil
	}
	var ds []entities.ResearchDoc
	if err := r.db.Where("doc_id IN ?", ids).Find(&ds).Error; err != nil {
		return nil, err
	}
	m := make(map[uint]entities.ResearchDoc, len(ds))
	for i := range ds {
		m[ds[i].DocID] = ds[i]
	}
	return m, nil
}
