package driver

var IndexQueries = []string{
	"CREATE INDEX ON :Capability(id);",
	"CREATE INDEX ON :Technique(id);",
	"CREATE INDEX ON :TaxonomyObject(id);",
	"CREATE INDEX ON :Run(id);",
}

const (
	SaveRunQuery = `
		MERGE (r:Run {id: $run_id})
		SET r.created_at = $created_at
		RETURN r.id AS id
	`

	// SaveMappingsQuery upserts one combined_analysis batch. Each row is a map
	// with veris_id, mitre_id, mapping_type, strength, frequency,
	// impact_score, technology_domain and creation_date.
	SaveMappingsQuery = `
		UNWIND $rows AS row
		MERGE (c:Capability {id: row.veris_id})
		MERGE (t:Technique {id: row.mitre_id})
		MERGE (c)-[m:MAPS_TO {run_id: $run_id, mapping_type: row.mapping_type}]->(t)
		SET m.strength = row.strength,
			m.frequency = row.frequency,
			m.impact_score = row.impact_score,
			m.technology_domain = row.technology_domain,
			m.creation_date = row.creation_date
		RETURN count(m) AS saved
	`

	SaveTaxonomyObjectsQuery = `
		UNWIND $nodes AS node
		MERGE (n:TaxonomyObject {id: node.id})
		SET n.name = node.name,
			n.object_type = node.object_type
		RETURN count(n) AS saved
	`

	SaveRelationshipsQuery = `
		UNWIND $edges AS edge
		MATCH (s:TaxonomyObject {id: edge.source_ref})
		MATCH (t:TaxonomyObject {id: edge.target_ref})
		MERGE (s)-[r:RELATES {run_id: $run_id, relationship_type: edge.relationship_type}]->(t)
		RETURN count(r) AS saved
	`

	MarkSeedsQuery = `
		UNWIND $seeds AS seed
		MATCH (n:TaxonomyObject {id: seed})
		SET n.seed_of = $run_id
		RETURN count(n) AS marked
	`
)
