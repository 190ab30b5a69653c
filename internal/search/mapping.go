package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/single"
	"github.com/blevesearch/bleve/v2/mapping"
)

// substringAnalyzer keeps the whole field value as one lowercased token,
// which makes wildcard queries behave like case-insensitive substring
// matching on the original text.
const substringAnalyzer = "substring"

// buildIndexMapping creates the Bleve index mapping for book documents.
//
// Title and author use the substring analyzer so "rin" finds
// "The Lord of the Rings". Genre uses the keyword analyzer for exact
// filtering. Rating fields are numeric so results can sort on them.
func buildIndexMapping() (mapping.IndexMapping, error) {
	indexMapping := bleve.NewIndexMapping()

	err := indexMapping.AddCustomAnalyzer(substringAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     single.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, err
	}

	docMapping := bleve.NewDocumentMapping()

	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = substringAnalyzer
	titleFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	authorFieldMapping := bleve.NewTextFieldMapping()
	authorFieldMapping.Analyzer = substringAnalyzer
	authorFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("author", authorFieldMapping)

	genreFieldMapping := bleve.NewTextFieldMapping()
	genreFieldMapping.Analyzer = keyword.Name
	genreFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("genre", genreFieldMapping)

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	ratingFieldMapping := bleve.NewNumericFieldMapping()
	ratingFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("average_rating", ratingFieldMapping)

	reviewsFieldMapping := bleve.NewNumericFieldMapping()
	reviewsFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("total_reviews", reviewsFieldMapping)

	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping, nil
}
