package export

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS analyses (
    run_id TEXT NOT NULL,
    name TEXT NOT NULL,
    payload TEXT NOT NULL,
    PRIMARY KEY (run_id, name),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS combined_analysis (
    run_id TEXT NOT NULL,
    rank INTEGER NOT NULL,
    veris_id TEXT NOT NULL,
    mitre_id TEXT NOT NULL,
    mapping_type TEXT,
    strength REAL NOT NULL,
    frequency INTEGER NOT NULL,
    impact_score REAL NOT NULL,
    technology_domain TEXT,
    creation_date TEXT,
    PRIMARY KEY (run_id, rank),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS novelty_scores (
    run_id TEXT NOT NULL,
    node_id TEXT NOT NULL,
    name TEXT,
    object_type TEXT,
    uniqueness REAL NOT NULL,
    isolation REAL NOT NULL,
    path_diversity REAL NOT NULL,
    score REAL NOT NULL,
    PRIMARY KEY (run_id, node_id),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_combined_mitre ON combined_analysis(mitre_id);
CREATE INDEX IF NOT EXISTS idx_novelty_score ON novelty_scores(run_id, score);
`
