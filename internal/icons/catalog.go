// Package icons holds the static icon catalog of the isometric set
// and a small scoring search over it.
package icons

// Icon is one catalog entry. ID is the value stored on a model item's
// icon field.
type Icon struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords,omitempty"`
}

// Catalog is the flat lookup table, grouped by category in source
// order. Categories() relies on this ordering.
var Catalog = []Icon{
	// core
	{ID: "server", Name: "Server", Category: "core", Keywords: []string{"host", "machine", "compute"}},
	{ID: "block", Name: "Block", Category: "core", Keywords: []string{"cube", "generic"}},
	{ID: "cloud", Name: "Cloud", Category: "core", Keywords: []string{"internet", "remote"}},
	{ID: "user", Name: "User", Category: "core", Keywords: []string{"person", "actor", "client"}},
	{ID: "function", Name: "Function", Category: "core", Keywords: []string{"lambda", "serverless", "compute"}},
	{ID: "cronjob", Name: "Cron Job", Category: "core", Keywords: []string{"schedule", "timer", "batch"}},
	{ID: "package", Name: "Package", Category: "core", Keywords: []string{"module", "library", "box"}},
	{ID: "lock", Name: "Lock", Category: "core", Keywords: []string{"security", "auth", "secret"}},
	{ID: "document", Name: "Document", Category: "core", Keywords: []string{"file", "report", "page"}},
	{ID: "mail", Name: "Mail", Category: "core", Keywords: []string{"email", "smtp", "message"}},

	// networking
	{ID: "router", Name: "Router", Category: "networking", Keywords: []string{"network", "gateway"}},
	{ID: "switch", Name: "Switch", Category: "networking", Keywords: []string{"network", "lan"}},
	{ID: "firewall", Name: "Firewall", Category: "networking", Keywords: []string{"security", "filter", "network"}},
	{ID: "loadbalancer", Name: "Load Balancer", Category: "networking", Keywords: []string{"lb", "traffic", "proxy"}},
	{ID: "dns", Name: "DNS", Category: "networking", Keywords: []string{"domain", "resolver", "name"}},
	{ID: "vpn", Name: "VPN", Category: "networking", Keywords: []string{"tunnel", "private", "network"}},
	{ID: "cdn", Name: "CDN", Category: "networking", Keywords: []string{"edge", "cache", "content"}},
	{ID: "gateway", Name: "API Gateway", Category: "networking", Keywords: []string{"api", "ingress", "proxy"}},

	// storage
	{ID: "database", Name: "Database", Category: "storage", Keywords: []string{"db", "sql", "relational"}},
	{ID: "storage", Name: "Storage", Category: "storage", Keywords: []string{"disk", "volume", "persistence"}},
	{ID: "cache", Name: "Cache", Category: "storage", Keywords: []string{"redis", "memcached", "fast"}},
	{ID: "objectstorage", Name: "Object Storage", Category: "storage", Keywords: []string{"bucket", "s3", "blob"}},
	{ID: "filestorage", Name: "File Storage", Category: "storage", Keywords: []string{"nfs", "share", "files"}},
	{ID: "backup", Name: "Backup", Category: "storage", Keywords: []string{"archive", "snapshot", "restore"}},

	// cloud
	{ID: "vm", Name: "Virtual Machine", Category: "cloud", Keywords: []string{"instance", "compute", "ec2"}},
	{ID: "container", Name: "Container", Category: "cloud", Keywords: []string{"docker", "pod", "oci"}},
	{ID: "kubernetes", Name: "Kubernetes", Category: "cloud", Keywords: []string{"k8s", "cluster", "orchestration"}},
	{ID: "paas", Name: "PaaS", Category: "cloud", Keywords: []string{"platform", "app service"}},
	{ID: "cloudfunction", Name: "Cloud Function", Category: "cloud", Keywords: []string{"lambda", "faas", "serverless"}},
	{ID: "monitoring", Name: "Monitoring", Category: "cloud", Keywords: []string{"metrics", "observability", "alerts"}},

	// clients
	{ID: "desktop", Name: "Desktop", Category: "clients", Keywords: []string{"pc", "workstation", "computer"}},
	{ID: "laptop", Name: "Laptop", Category: "clients", Keywords: []string{"notebook", "computer"}},
	{ID: "mobile", Name: "Mobile", Category: "clients", Keywords: []string{"phone", "smartphone", "ios", "android"}},
	{ID: "tablet", Name: "Tablet", Category: "clients", Keywords: []string{"ipad", "touch"}},
	{ID: "browser", Name: "Browser", Category: "clients", Keywords: []string{"web", "chrome", "frontend"}},
	{ID: "terminal", Name: "Terminal", Category: "clients", Keywords: []string{"cli", "shell", "console"}},

	// messaging
	{ID: "queue", Name: "Queue", Category: "messaging", Keywords: []string{"mq", "fifo", "buffer"}},
	{ID: "topic", Name: "Topic", Category: "messaging", Keywords: []string{"pubsub", "broadcast", "fanout"}},
	{ID: "broker", Name: "Message Broker", Category: "messaging", Keywords: []string{"kafka", "rabbitmq", "amqp"}},
	{ID: "stream", Name: "Stream", Category: "messaging", Keywords: []string{"kinesis", "event", "pipeline"}},
	{ID: "websocket", Name: "WebSocket", Category: "messaging", Keywords: []string{"realtime", "push", "socket"}},
}

// Get returns the catalog entry with the given id, or nil.
func Get(id string) *Icon {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}

// Categories returns the distinct categories in catalog order.
func Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, icon := range Catalog {
		if !seen[icon.Category] {
			seen[icon.Category] = true
			out = append(out, icon.Category)
		}
	}
	return out
}
