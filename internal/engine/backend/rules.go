package backend

import (
	"strings"

	"github.com/vampirenirmal/codeintel/internal/engine"
)

// Rule sets for the backend category. Slice order fixes finding order in
// each dimension result.

var qualityRules = engine.RuleSet{
	{
		ID: "todo_markers",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "todo", "fixme", "hack:") {
				return &engine.Finding{
					Issue:      "Unresolved TODO/FIXME markers left in the fragment",
					Suggestion: "Resolve or ticket outstanding markers before shipping",
					Delta:      -5,
				}
			}
			return nil
		},
	},
	{
		ID: "console_debugging",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "console.log", "print(", "println!", "fmt.println") {
				return &engine.Finding{
					Issue:      "Ad-hoc print/console statements used for output",
					Suggestion: "Route output through the structured logger",
					Delta:      -5,
				}
			}
			return nil
		},
	},
	{
		ID: "magic_numbers",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "sleep(5000", "sleep(10000", "settimeout(", "* 86400") &&
				!engine.ContainsAny(code, "const ", "final ", ":=") {
				return &engine.Finding{
					Issue:      "Unexplained numeric literals in timing logic",
					Suggestion: "Name timing and size constants",
					Delta:      -4,
				}
			}
			return nil
		},
	},
	{
		ID: "typed_interfaces",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "interface ", "type ", "dataclass", "pydantic", "zod.") {
				return &engine.Finding{Delta: 4}
			}
			return nil
		},
	},
	{
		ID: "input_validation",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "validate", "schema.parse", "joi.", "zod.") {
				return &engine.Finding{Delta: 5}
			}
			return nil
		},
	},
}

var maintainabilityRules = engine.RuleSet{
	{
		ID: "oversized_fragment",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Count(code, "\n") > 300 {
				return &engine.Finding{
					Issue:      "Single fragment exceeds 300 lines",
					Suggestion: "Split the module along responsibility boundaries",
					Delta:      -8,
				}
			}
			return nil
		},
	},
	{
		ID: "deep_nesting",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "\n                if", "\n\t\t\t\tif") {
				return &engine.Finding{
					Issue:      "Deeply nested conditional logic",
					Suggestion: "Flatten with guard clauses or extracted functions",
					Delta:      -6,
				}
			}
			return nil
		},
	},
	{
		ID: "documented_api",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "/**", "\"\"\"", "/// ") {
				return &engine.Finding{Delta: 5}
			}
			return nil
		},
	},
	{
		ID: "configuration_externalized",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "process.env", "os.getenv", "os.environ", "viper.", "dotenv") {
				return &engine.Finding{Delta: 4}
			}
			return nil
		},
	},
}

var performanceRules = engine.RuleSet{
	{
		ID: "sequential_awaits_in_loop",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "for ", "while ", ".foreach") && strings.Contains(code, "await ") {
				return &engine.Finding{
					Issue:      "Awaiting inside a loop serializes independent work",
					Suggestion: "Collect the promises and join with Promise.all (or a worker pool)",
					Delta:      -12,
				}
			}
			return nil
		},
	},
	{
		ID: "sync_io",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "readfilesync", "writefilesync", "execsync", "time.sleep(") {
				return &engine.Finding{
					Issue:      "Synchronous blocking I/O on the request path",
					Suggestion: "Use the async I/O variants so the event loop keeps serving",
					Delta:      -10,
				}
			}
			return nil
		},
	},
	{
		ID: "unbounded_query",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "select ", ".find(", ".findall(") &&
				!engine.ContainsAny(code, "limit", ".take(", "top ", "pagesize") {
				return &engine.Finding{
					Issue:      "Data fetched without a bound on result size",
					Suggestion: "Add pagination or an explicit LIMIT",
					Delta:      -10,
				}
			}
			return nil
		},
	},
	{
		ID: "caching_layer",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "cache", "memoize", "redis") {
				return &engine.Finding{Delta: 8}
			}
			return nil
		},
	},
	{
		ID: "connection_pooling",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "pool", "maxconnections", "keepalive") {
				return &engine.Finding{Delta: 5}
			}
			return nil
		},
	},
	{
		ID: "streaming_response",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "stream", "pipe(", "yield ") {
				return &engine.Finding{Delta: 4}
			}
			return nil
		},
	},
}

// securityRules follow an OWASP-style taxonomy; the category code appears
// only in the message text, never in control flow.
var securityRules = engine.RuleSet{
	{
		ID: "code_injection",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "eval(", "exec(", "new function(", "child_process.exec(") {
				return &engine.Finding{
					Issue:      "A03 Injection: dynamic code execution (eval/exec) on potentially tainted input",
					Suggestion: "Remove dynamic evaluation; dispatch through an explicit allowlist",
					Delta:      -30,
				}
			}
			return nil
		},
	},
	{
		ID: "sql_injection",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "select", "insert", "update", "delete") &&
				engine.ContainsAny(code, `" +`, `' +`, `+ "`, `+ '`, "${") {
				return &engine.Finding{
					Issue:      "A03 Injection: SQL assembled by string concatenation",
					Suggestion: "Use parameterized queries or a query builder",
					Delta:      -25,
				}
			}
			return nil
		},
	},
	{
		ID: "hardcoded_secrets",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "api_key = \"", "apikey = \"", "secret = \"", "password = \"", "password: \"") {
				return &engine.Finding{
					Issue:      "A07 Identification failures: credential literal committed with the code",
					Suggestion: "Move secrets to the environment or a secret manager",
					Delta:      -20,
				}
			}
			return nil
		},
	},
	{
		ID: "missing_auth_on_routes",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "app.get(", "app.post(", "router.", "@app.route") &&
				!engine.ContainsAny(code, "auth", "jwt", "session", "apikey", "api_key") {
				return &engine.Finding{
					Issue:      "A01 Broken access control: route definitions with no authentication middleware",
					Suggestion: "Attach authentication/authorization middleware to the routes",
					Delta:      -15,
				}
			}
			return nil
		},
	},
	{
		ID: "insecure_transport",
		Detect: func(code, tech string) *engine.Finding {
			if strings.Contains(code, "http://") && !engine.ContainsAny(code, "localhost", "127.0.0.1") {
				return &engine.Finding{
					Issue:      "A02 Cryptographic failures: plain HTTP endpoint referenced",
					Suggestion: "Use TLS for every non-local endpoint",
					Delta:      -10,
				}
			}
			return nil
		},
	},
	{
		ID: "weak_hashing",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "md5(", "sha1(", "createhash('md5'", "createhash(\"md5\"") {
				return &engine.Finding{
					Issue:      "A02 Cryptographic failures: weak hash function in use",
					Suggestion: "Use bcrypt or argon2 for passwords, SHA-256+ elsewhere",
					Delta:      -15,
				}
			}
			return nil
		},
	},
	{
		ID: "password_hashing",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "bcrypt", "argon2", "scrypt") {
				return &engine.Finding{Delta: 10}
			}
			return nil
		},
	},
	{
		ID: "multi_factor_auth",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "mfa", "totp", "2fa") {
				return &engine.Finding{Delta: 8}
			}
			return nil
		},
	},
	{
		ID: "security_headers",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "helmet", "content-security-policy", "x-frame-options") {
				return &engine.Finding{Delta: 5}
			}
			return nil
		},
	},
	{
		ID: "rate_limiting",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "rate limit", "ratelimit", "rate-limit", "throttle") {
				return &engine.Finding{Delta: 5}
			}
			return nil
		},
	},
}

// scalabilityRules detect architecture patterns as positive findings and
// their absence or inverse as negatives, each paired with remediation.
var scalabilityRules = engine.RuleSet{
	{
		ID: "sharding",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "shard", "partition") {
				return &engine.Finding{Delta: 8}
			}
			return nil
		},
	},
	{
		ID: "caching",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "cache", "redis", "memcached") {
				return &engine.Finding{Delta: 8}
			}
			return nil
		},
	},
	{
		ID: "clustering",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "cluster", "worker pool", "goroutine pool", "pm2") {
				return &engine.Finding{Delta: 6}
			}
			return nil
		},
	},
	{
		ID: "message_queue",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "queue", "kafka", "rabbitmq", "nats", "pubsub") {
				return &engine.Finding{Delta: 6}
			}
			return nil
		},
	},
	{
		ID: "stateless_design",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "stateless", "jwt") {
				return &engine.Finding{Delta: 5}
			}
			return nil
		},
	},
	{
		ID: "in_memory_session",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "session = {}", "sessions = {}", "memorystore") {
				return &engine.Finding{
					Issue:      "In-process session state pins users to one instance",
					Suggestion: "Move session state to a shared store so instances scale horizontally",
					Delta:      -10,
				}
			}
			return nil
		},
	},
	{
		ID: "sequential_fanout",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "for ", "while ") && strings.Contains(code, "await ") {
				return &engine.Finding{
					Issue:      "Sequential awaits in a loop cap throughput at one item per round-trip",
					Suggestion: "Fan out independent calls and join the results",
					Delta:      -12,
				}
			}
			return nil
		},
	},
	{
		ID: "blocking_io",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "readfilesync", "execsync", "time.sleep(") {
				return &engine.Finding{
					Issue:      "Blocking I/O holds worker capacity under load",
					Suggestion: "Use non-blocking I/O so concurrency scales with connections",
					Delta:      -10,
				}
			}
			return nil
		},
	},
}

var reliabilityRules = engine.RuleSet{
	{
		ID: "retry_with_backoff",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "retry", "backoff") {
				return &engine.Finding{Delta: 8}
			}
			return nil
		},
	},
	{
		ID: "circuit_breaker",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "circuit breaker", "circuitbreaker", "hystrix") {
				return &engine.Finding{Delta: 8}
			}
			return nil
		},
	},
	{
		ID: "health_endpoint",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "/health", "healthz", "health_check", "healthcheck") {
				return &engine.Finding{Delta: 5}
			}
			return nil
		},
	},
	{
		ID: "graceful_shutdown",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "sigterm", "graceful", "shutdown") {
				return &engine.Finding{Delta: 5}
			}
			return nil
		},
	},
	{
		ID: "swallowed_errors",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "catch {}", "catch (e) {}", "except: pass", "except exception: pass", "_ = err") {
				return &engine.Finding{
					Issue:      "Errors caught and discarded without handling",
					Suggestion: "Log, wrap or propagate every caught error",
					Delta:      -10,
				}
			}
			return nil
		},
	},
	{
		ID: "missing_outbound_timeout",
		Detect: func(code, tech string) *engine.Finding {
			if engine.ContainsAny(code, "fetch(", "http.get", "requests.get", "axios.") &&
				!strings.Contains(code, "timeout") {
				return &engine.Finding{
					Issue:      "Outbound call without a timeout can hang the caller",
					Suggestion: "Set an explicit timeout on every outbound request",
					Delta:      -8,
				}
			}
			return nil
		},
	},
}
