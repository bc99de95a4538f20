package database

import (
	"strings"

	"github.com/vampirenirmal/codeintel/internal/engine"
)

// DefaultTechnology is used when a request names no tech stack.
const DefaultTechnology = "postgresql"

// generators is the ordered technology dispatch table. Order matters for
// overlapping names: "postgres" is listed before "sql" fallbacks, and
// "mysql" before the generic entry, so "postgresql" never routes to the
// MySQL builder. The final keyless entry is the terminal fallback.
var generators = engine.GeneratorTable{
	{Keys: []string{"postgres"}, Build: buildPostgres},
	{Keys: []string{"mysql", "mariadb"}, Build: buildMySQL},
	{Keys: []string{"mongo"}, Build: buildMongo},
	{Keys: []string{"redis"}, Build: buildRedis},
	{Keys: []string{"sqlite"}, Build: buildSQLite},
	{Build: buildGenericSQL},
}

// commentStyleFor picks the annotation prefix matching the technology's
// artifact syntax.
func commentStyleFor(technology string) engine.CommentStyle {
	tech := strings.ToLower(technology)
	if engine.ContainsAny(tech, "mongo", "redis") {
		return engine.CommentSlash
	}
	return engine.CommentDash
}

func tableName(req *engine.CodeGenerationRequest) string {
	// Derive a stable identifier from the first word of the feature.
	fields := strings.Fields(strings.ToLower(req.FeatureDescription))
	for _, f := range fields {
		clean := strings.Map(func(r rune) rune {
			if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
				return r
			}
			return -1
		}, f)
		if len(clean) >= 3 {
			return clean + "_records"
		}
	}
	return "feature_records"
}

func buildPostgres(req *engine.CodeGenerationRequest, ins engine.TechnologyInsights) string {
	table := tableName(req)
	var b strings.Builder
	b.WriteString(engine.Header(engine.CommentDash, req.FeatureDescription, "PostgreSQL", req.Role))
	b.WriteString("\nCREATE TABLE IF NOT EXISTS " + table + " (\n")
	b.WriteString("    id BIGSERIAL PRIMARY KEY,\n")
	b.WriteString("    name VARCHAR(255) NOT NULL,\n")
	b.WriteString("    description TEXT,\n")
	b.WriteString("    status VARCHAR(32) NOT NULL DEFAULT 'active',\n")
	b.WriteString("    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),\n")
	b.WriteString("    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()\n")
	b.WriteString(");\n\n")
	b.WriteString("-- Lookup index for the most common access path\n")
	b.WriteString("CREATE INDEX IF NOT EXISTS idx_" + table + "_status ON " + table + " (status);\n\n")
	b.WriteString("-- Example: fetch active records with an explicit column list\n")
	b.WriteString("SELECT id, name, status, created_at\n")
	b.WriteString("FROM " + table + "\n")
	b.WriteString("WHERE status = $1\n")
	b.WriteString("ORDER BY created_at DESC\n")
	b.WriteString("LIMIT 50;\n")
	return b.String()
}

func buildMySQL(req *engine.CodeGenerationRequest, ins engine.TechnologyInsights) string {
	table := tableName(req)
	var b strings.Builder
	b.WriteString(engine.Header(engine.CommentDash, req.FeatureDescription, "MySQL", req.Role))
	b.WriteString("\nCREATE TABLE IF NOT EXISTS " + table + " (\n")
	b.WriteString("    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,\n")
	b.WriteString("    name VARCHAR(255) NOT NULL,\n")
	b.WriteString("    description TEXT,\n")
	b.WriteString("    status VARCHAR(32) NOT NULL DEFAULT 'active',\n")
	b.WriteString("    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,\n")
	b.WriteString("    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,\n")
	b.WriteString("    INDEX idx_" + table + "_status (status)\n")
	b.WriteString(") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;\n\n")
	b.WriteString("-- Example: parameterized lookup\n")
	b.WriteString("SELECT id, name, status, created_at\n")
	b.WriteString("FROM " + table + "\n")
	b.WriteString("WHERE status = ?\n")
	b.WriteString("ORDER BY created_at DESC\n")
	b.WriteString("LIMIT 50;\n")
	return b.String()
}

func buildMongo(req *engine.CodeGenerationRequest, ins engine.TechnologyInsights) string {
	table := tableName(req)
	var b strings.Builder
	b.WriteString(engine.Header(engine.CommentSlash, req.FeatureDescription, "MongoDB", req.Role))
	b.WriteString("\n// Collection setup with schema validation\n")
	b.WriteString("db.createCollection(\"" + table + "\", {\n")
	b.WriteString("  validator: {\n")
	b.WriteString("    $jsonSchema: {\n")
	b.WriteString("      bsonType: \"object\",\n")
	b.WriteString("      required: [\"name\", \"status\", \"createdAt\"],\n")
	b.WriteString("      properties: {\n")
	b.WriteString("        name: { bsonType: \"string\" },\n")
	b.WriteString("        status: { enum: [\"active\", \"archived\"] },\n")
	b.WriteString("        createdAt: { bsonType: \"date\" }\n")
	b.WriteString("      }\n")
	b.WriteString("    }\n")
	b.WriteString("  }\n")
	b.WriteString("});\n\n")
	b.WriteString("// Index for the primary access path\n")
	b.WriteString("db." + table + ".createIndex({ status: 1, createdAt: -1 });\n\n")
	b.WriteString("// Example: bounded query on the indexed fields\n")
	b.WriteString("db." + table + ".find({ status: \"active\" }).sort({ createdAt: -1 }).limit(50);\n")
	return b.String()
}

func buildRedis(req *engine.CodeGenerationRequest, ins engine.TechnologyInsights) string {
	key := strings.TrimSuffix(tableName(req), "_records")
	var b strings.Builder
	b.WriteString(engine.Header(engine.CommentSlash, req.FeatureDescription, "Redis", req.Role))
	b.WriteString("\n// Hash per entity, sorted set as the time-ordered index\n")
	b.WriteString("HSET " + key + ":1 name \"example\" status \"active\"\n")
	b.WriteString("ZADD " + key + ":by_created 1700000000 \"1\"\n\n")
	b.WriteString("// Bounded range read over the index\n")
	b.WriteString("ZREVRANGE " + key + ":by_created 0 49\n\n")
	b.WriteString("// Expire transient entries instead of deleting in bulk\n")
	b.WriteString("EXPIRE " + key + ":1 86400\n")
	return b.String()
}

func buildSQLite(req *engine.CodeGenerationRequest, ins engine.TechnologyInsights) string {
	table := tableName(req)
	var b strings.Builder
	b.WriteString(engine.Header(engine.CommentDash, req.FeatureDescription, "SQLite", req.Role))
	b.WriteString("\nCREATE TABLE IF NOT EXISTS " + table + " (\n")
	b.WriteString("    id INTEGER PRIMARY KEY AUTOINCREMENT,\n")
	b.WriteString("    name TEXT NOT NULL,\n")
	b.WriteString("    description TEXT,\n")
	b.WriteString("    status TEXT NOT NULL DEFAULT 'active',\n")
	b.WriteString("    created_at TEXT NOT NULL DEFAULT (datetime('now'))\n")
	b.WriteString(");\n\n")
	b.WriteString("CREATE INDEX IF NOT EXISTS idx_" + table + "_status ON " + table + " (status);\n\n")
	b.WriteString("-- Example: parameterized, bounded read\n")
	b.WriteString("SELECT id, name, status, created_at FROM " + table + " WHERE status = ? LIMIT 50;\n")
	return b.String()
}

func buildGenericSQL(req *engine.CodeGenerationRequest, ins engine.TechnologyInsights) string {
	table := tableName(req)
	var b strings.Builder
	b.WriteString(engine.Header(engine.CommentDash, req.FeatureDescription, "SQL", req.Role))
	b.WriteString("\nCREATE TABLE " + table + " (\n")
	b.WriteString("    id INTEGER PRIMARY KEY,\n")
	b.WriteString("    name VARCHAR(255) NOT NULL,\n")
	b.WriteString("    status VARCHAR(32) NOT NULL DEFAULT 'active',\n")
	b.WriteString("    created_at TIMESTAMP NOT NULL\n")
	b.WriteString(");\n\n")
	b.WriteString("CREATE INDEX idx_" + table + "_status ON " + table + " (status);\n\n")
	b.WriteString("-- Example: explicit column list with a bounded result\n")
	b.WriteString("SELECT id, name, status FROM " + table + " WHERE status = 'active';\n")
	return b.String()
}
