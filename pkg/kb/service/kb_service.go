package service

import "webplanner/entities"

type KBService interface {
	UpsertDocument(title, tags, text, sourceURL string) (*entities.ResearchDoc, int, error)
	Search(query string, k int) ([]entities.ResearchChunk, error)
	ListDocs() ([]entities.ResearchDoc, error)
	DocsMeta(ids []uint) (map[uint]entities.ResearchDoc, error)
}
