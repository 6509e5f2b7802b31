// Package section defines the data model shared by the indexing and
// retrieval layers: typed document sections, their metadata, and the
// payload layout persisted in the vector store.
//
// # Overview
//
// A Section is the atomic retrievable unit of the engine - one page of an
// extracted source document, labeled with a SectionType and a caller-supplied
// performance score. Sections are immutable once stored; re-indexing a
// document produces new records instead of mutating existing ones.
//
// The package also owns the payload codec. Every field that the retrieval
// layer filters or boosts on (entity, section_type, document_date,
// performance_score) is stored at the top level of the payload so the vector
// store can index it:
//
//	{
//	  "entity": "Acme Foundation",
//	  "section_type": "metrics",
//	  "content": "...",
//	  "document_date": "2024-05-01T00:00:00Z",
//	  "performance_score": 0.9,
//	  "metadata": {"page": 3, "fileName": "acme.pdf", "industry": "tech", "partnership_type": "corporate"}
//	}
//
// PointID derives a stable UUID for a section from its entity, source file
// and page, which makes upserts of the same section idempotent.
package section
