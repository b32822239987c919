package repository

import "webplanner/entities"

type KBRepository interface {
	CreateDoc(*entities.ResearchDoc) error
	BulkInsertChunks([]entities.ResearchChunk) error
	ListDocs() ([]entities.ResearchDoc, error)
	AllChunks() ([]entities.ResearchChunk, error)
	DocsByIDs(ids []uint) (map[uint]entities.ResearchDoc, error)
}
