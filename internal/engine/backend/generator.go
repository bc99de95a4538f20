package backend

import (
	"strings"

	"github.com/vampirenirmal/codeintel/internal/engine"
)

// DefaultTechnology is used when a request names no tech stack.
const DefaultTechnology = "nodejs"

// generators is the ordered technology dispatch table. "node" is matched
// before the script-language keys so "nodejs"/"node.js" never fall
// through; "go" is listed after "django"/"mongo"-free keys since plain
// substring matching would otherwise catch words containing "go". The
// final keyless entry is the terminal fallback.
var generators = engine.GeneratorTable{
	{Keys: []string{"node", "express", "typescript", "javascript"}, Build: buildNode},
	{Keys: []string{"fastapi", "flask", "django", "python"}, Build: buildPython},
	{Keys: []string{"spring", "java"}, Build: buildJava},
	{Keys: []string{"golang", "go"}, Build: buildGo},
	{Build: buildNode},
}

func commentStyleFor(technology string) engine.CommentStyle {
	if engine.ContainsAny(strings.ToLower(technology), "python", "fastapi", "flask", "django") {
		return engine.CommentHash
	}
	return engine.CommentSlash
}

func buildNode(req *engine.CodeGenerationRequest, ins engine.TechnologyInsights) string {
	feature := engine.SanitizeComment(req.FeatureDescription)
	var b strings.Builder
	b.WriteString(engine.Header(engine.CommentSlash, req.FeatureDescription, "Node.js (Express)", req.Role))
	b.WriteString(`
const express = require('express');
const helmet = require('helmet');

const app = express();
app.use(helmet());
app.use(express.json());

// Authentication middleware guards the feature routes below.
const requireAuth = (req, res, next) => {
  const token = req.headers.authorization;
  if (!token) {
    return res.status(401).json({ error: 'authentication required' });
  }
  next();
};

// Liveness probe for the orchestrator.
app.get('/health', (req, res) => {
  res.json({ status: 'ok' });
});

// Feature endpoint: ` + feature + `
app.get('/api/feature', requireAuth, async (req, res, next) => {
  try {
    const limit = Math.min(parseInt(req.query.limit, 10) || 50, 100);
    const items = await listFeatureItems(limit);
    res.json({ items });
  } catch (err) {
    next(err);
  }
});

async function listFeatureItems(limit) {
  // Replace with the real data access for: ` + feature + `
  return [];
}

// Central error handler keeps failures out of individual routes.
app.use((err, req, res, next) => {
  console.error(err);
  res.status(500).json({ error: 'internal error' });
});

const port = process.env.PORT || 3000;
app.listen(port, () => {
  console.log('listening on ' + port);
});
`)
	return b.String()
}

func buildPython(req *engine.CodeGenerationRequest, ins engine.TechnologyInsights) string {
	feature := engine.SanitizeComment(req.FeatureDescription)
	var b strings.Builder
	b.WriteString(engine.Header(engine.CommentHash, req.FeatureDescription, "Python (FastAPI)", req.Role))
	b.WriteString(`
from fastapi import FastAPI, Depends, HTTPException, Header
from pydantic import BaseModel

app = FastAPI()


class FeatureItem(BaseModel):
    id: int
    name: str


def require_auth(authorization: str = Header(default="")) -> str:
    if not authorization:
        raise HTTPException(status_code=401, detail="authentication required")
    return authorization


@app.get("/health")
async def health() -> dict:
    return {"status": "ok"}


@app.get("/api/feature")
async def list_feature(limit: int = 50, _auth: str = Depends(require_auth)) -> list[FeatureItem]:
    # Feature: ` + feature + `
    limit = min(limit, 100)
    return await fetch_feature_items(limit)


async def fetch_feature_items(limit: int) -> list[FeatureItem]:
    # Replace with the real data access for: ` + feature + `
    return []
`)
	return b.String()
}

func buildGo(req *engine.CodeGenerationRequest, ins engine.TechnologyInsights) string {
	feature := engine.SanitizeComment(req.FeatureDescription)
	var b strings.Builder
	b.WriteString(engine.Header(engine.CommentSlash, req.FeatureDescription, "Go (net/http)", req.Role))
	b.WriteString(`
package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
)

// Feature: ` + feature + `
func main() {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.Handle("/api/feature", requireAuth(http.HandlerFunc(featureHandler)))

	addr := ":" + port()
	slog.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func featureHandler(w http.ResponseWriter, r *http.Request) {
	// Replace with the real data access for: ` + feature + `
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
}

func requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}
`)
	return b.String()
}

func buildJava(req *engine.CodeGenerationRequest, ins engine.TechnologyInsights) string {
	feature := engine.SanitizeComment(req.FeatureDescription)
	var b strings.Builder
	b.WriteString(engine.Header(engine.CommentSlash, req.FeatureDescription, "Java (Spring Boot)", req.Role))
	b.WriteString(`
import org.springframework.boot.SpringApplication;
import org.springframework.boot.autoconfigure.SpringBootApplication;
import org.springframework.web.bind.annotation.*;

import java.util.List;
import java.util.Map;

// Feature: ` + feature + `
@SpringBootApplication
@RestController
public class FeatureApplication {

    public static void main(String[] args) {
        SpringApplication.run(FeatureApplication.class, args);
    }

    @GetMapping("/health")
    public Map<String, String> health() {
        return Map.of("status", "ok");
    }

    @GetMapping("/api/feature")
    public List<FeatureItem> listFeature(@RequestParam(defaultValue = "50") int limit,
                                         @RequestHeader("Authorization") String auth) {
        int bounded = Math.min(limit, 100);
        // Replace with the real data access for: ` + feature + `
        return List.of();
    }

    public record FeatureItem(long id, String name) {}
}
`)
	return b.String()
}
