// Package seed loads the bundled sample corpus into the document index.
package seed

// Doc is one sample document before embedding and metadata enrichment.
type Doc struct {
	ID       string
	Title    string
	Content  string
	Category string
	Tags     []string
}

// Corpus returns the bundled sample documents: tech articles, business
// docs, science papers, and product documentation.
func Corpus() []Doc {
	return []Doc{
		{
			ID:       "doc_001",
			Title:    "Introduction to Machine Learning Algorithms",
			Content:  "Machine learning algorithms are computational methods that enable computers to learn patterns from data without being explicitly programmed. The main categories include supervised learning (classification and regression), unsupervised learning (clustering and dimensionality reduction), and reinforcement learning. Popular algorithms include linear regression, decision trees, random forests, support vector machines, neural networks, and k-means clustering. Each algorithm has its strengths and is suitable for different types of problems and data characteristics.",
			Category: "technology",
			Tags:     []string{"machine-learning", "algorithms", "data-science", "AI"},
		},
		{
			ID:       "doc_002",
			Title:    "Cloud Computing Best Practices for Enterprise",
			Content:  "Cloud computing has revolutionized how enterprises manage their IT infrastructure. Key best practices include implementing proper security measures with multi-factor authentication, using Infrastructure as Code (IaC) for consistent deployments, establishing cost monitoring and optimization strategies, designing for scalability and fault tolerance, and maintaining data backup and disaster recovery plans. Popular cloud platforms include AWS, Azure, and Google Cloud Platform, each offering unique services and pricing models.",
			Category: "technology",
			Tags:     []string{"cloud-computing", "enterprise", "infrastructure", "security"},
		},
		{
			ID:       "doc_003",
			Title:    "Cybersecurity Threats in 2024: Prevention and Response",
			Content:  "The cybersecurity landscape continues to evolve with sophisticated threats including advanced persistent threats (APTs), ransomware attacks, phishing campaigns, and supply chain attacks. Organizations must implement layered security approaches including endpoint detection and response (EDR), security information and event management (SIEM), zero-trust architecture, regular security training for employees, and incident response planning. Emerging threats include AI-powered attacks and quantum computing implications for encryption.",
			Category: "technology",
			Tags:     []string{"cybersecurity", "threats", "prevention", "enterprise-security"},
		},
		{
			ID:       "doc_004",
			Title:    "The Future of Artificial Intelligence and Ethics",
			Content:  "Artificial Intelligence is rapidly advancing with developments in large language models, computer vision, robotics, and autonomous systems. However, these advances raise important ethical considerations including bias in AI systems, privacy concerns, job displacement, and the need for AI governance. Organizations are implementing responsible AI frameworks, establishing AI ethics committees, and developing guidelines for fair and transparent AI deployment. The future will require balancing innovation with ethical responsibility.",
			Category: "technology",
			Tags:     []string{"artificial-intelligence", "ethics", "governance", "future-tech"},
		},
		{
			ID:       "doc_005",
			Title:    "Microservices Architecture: Design Patterns and Implementation",
			Content:  "Microservices architecture breaks down monolithic applications into smaller, independent services that communicate through APIs. Key design patterns include API Gateway, Circuit Breaker, Service Discovery, Event Sourcing, and CQRS (Command Query Responsibility Segregation). Implementation considerations include containerization with Docker, orchestration with Kubernetes, service mesh for communication, distributed tracing for monitoring, and handling eventual consistency. Benefits include scalability, technology diversity, and team autonomy.",
			Category: "technology",
			Tags:     []string{"microservices", "architecture", "design-patterns", "scalability"},
		},
		{
			ID:       "doc_006",
			Title:    "Digital Transformation Strategy for Traditional Industries",
			Content:  "Digital transformation is no longer optional for traditional industries. Successful transformation requires a comprehensive strategy that includes technology modernization, process automation, data-driven decision making, and cultural change management. Key components include cloud migration, customer experience digitization, supply chain optimization, and workforce reskilling. Industries like manufacturing, healthcare, finance, and retail are leveraging IoT, AI, and analytics to create competitive advantages and improve operational efficiency.",
			Category: "business",
			Tags:     []string{"digital-transformation", "strategy", "innovation", "change-management"},
		},
		{
			ID:       "doc_007",
			Title:    "Sustainable Business Practices and ESG Reporting",
			Content:  "Environmental, Social, and Governance (ESG) criteria have become central to business strategy and investor decisions. Companies are implementing sustainable practices including carbon footprint reduction, circular economy principles, ethical supply chain management, and diverse hiring practices. ESG reporting frameworks like GRI, SASB, and TCFD provide standards for measuring and communicating sustainability performance. Benefits include improved brand reputation, risk mitigation, cost savings, and access to sustainable financing.",
			Category: "business",
			Tags:     []string{"sustainability", "ESG", "reporting", "corporate-responsibility"},
		},
		{
			ID:       "doc_008",
			Title:    "Market Analysis: Global E-commerce Trends 2024",
			Content:  "The global e-commerce market continues to grow rapidly, driven by mobile commerce, social commerce, and cross-border trade. Key trends include personalization through AI and machine learning, voice commerce, augmented reality shopping experiences, subscription-based models, and sustainable packaging. Emerging markets show the highest growth rates, while established markets focus on omnichannel experiences and customer retention. Challenges include supply chain disruptions, cybersecurity threats, and regulatory compliance across different regions.",
			Category: "business",
			Tags:     []string{"e-commerce", "market-analysis", "trends", "retail"},
		},
		{
			ID:       "doc_009",
			Title:    "Financial Planning and Risk Management in Uncertain Times",
			Content:  "Financial planning has become more complex due to economic volatility, geopolitical tensions, and technological disruption. Effective risk management strategies include diversification across asset classes and geographies, stress testing financial scenarios, maintaining adequate liquidity reserves, and implementing hedging strategies. Organizations are adopting dynamic budgeting, real-time financial monitoring, and scenario-based planning. Key considerations include inflation hedging, currency risk, regulatory changes, and climate-related financial risks.",
			Category: "business",
			Tags:     []string{"financial-planning", "risk-management", "economic-uncertainty", "strategy"},
		},
		{
			ID:       "doc_010",
			Title:    "Climate Change Impacts on Biodiversity and Ecosystem Services",
			Content:  "Climate change is fundamentally altering Earth's ecosystems, affecting species distribution, migration patterns, and ecosystem services. Research shows that rising temperatures, changing precipitation patterns, and extreme weather events are causing habitat loss, species extinction, and disruption of ecological networks. Ecosystem services such as pollination, water purification, and carbon sequestration are being compromised. Conservation strategies include protected area expansion, corridor creation, assisted migration, and ecosystem restoration. Urgent action is needed to prevent irreversible biodiversity loss.",
			Category: "science",
			Tags:     []string{"climate-change", "biodiversity", "ecosystem", "conservation"},
		},
		{
			ID:       "doc_011",
			Title:    "Quantum Computing: From Theory to Practical Applications",
			Content:  "Quantum computing leverages quantum mechanical phenomena like superposition and entanglement to process information in fundamentally new ways. Unlike classical bits, quantum bits (qubits) can exist in multiple states simultaneously, enabling exponential computational speedups for certain problems. Current applications include cryptography, optimization, drug discovery, and financial modeling. Challenges include quantum decoherence, error correction, and scalability. Leading companies and research institutions are making progress toward fault-tolerant quantum computers that could revolutionize computing.",
			Category: "science",
			Tags:     []string{"quantum-computing", "physics", "technology", "research"},
		},
		{
			ID:       "doc_012",
			Title:    "Gene Therapy Advances in Treating Genetic Disorders",
			Content:  "Gene therapy has emerged as a promising treatment for genetic disorders, offering the potential to correct defective genes at their source. Recent advances include CRISPR-Cas9 gene editing, viral vector delivery systems, and base editing techniques. Successful treatments have been developed for conditions like severe combined immunodeficiency (SCID), sickle cell disease, and inherited blindness. Challenges include delivery efficiency, immune responses, off-target effects, and ethical considerations. Ongoing research focuses on improving safety, expanding applications, and reducing costs.",
			Category: "science",
			Tags:     []string{"gene-therapy", "genetics", "medicine", "biotechnology"},
		},
		{
			ID:       "doc_013",
			Title:    "Renewable Energy Technologies: Efficiency and Storage Solutions",
			Content:  "Renewable energy technologies have achieved significant improvements in efficiency and cost-effectiveness. Solar photovoltaic systems now achieve over 26% efficiency in commercial applications, while wind turbines have grown larger and more efficient. Key challenges include energy storage and grid integration. Battery technologies, particularly lithium-ion and emerging solid-state batteries, are improving energy density and reducing costs. Other storage solutions include pumped hydro, compressed air, and hydrogen production. Smart grid technologies enable better integration of variable renewable sources.",
			Category: "science",
			Tags:     []string{"renewable-energy", "solar", "wind", "energy-storage"},
		},
		{
			ID:       "doc_014",
			Title:    "API Authentication Guide: OAuth 2.0 Implementation",
			Content:  "This guide covers implementing OAuth 2.0 authentication for our API services. OAuth 2.0 provides secure authorization flows for web applications, mobile apps, and server-to-server communication. The implementation includes authorization code flow for web apps, client credentials flow for server applications, and PKCE (Proof Key for Code Exchange) for mobile and single-page applications. Required endpoints include authorization, token, and token introspection. Security considerations include using HTTPS, validating redirect URIs, implementing rate limiting, and proper token storage.",
			Category: "documentation",
			Tags:     []string{"API", "authentication", "OAuth", "security", "development"},
		},
		{
			ID:       "doc_015",
			Title:    "Database Performance Optimization Best Practices",
			Content:  "Database performance optimization is crucial for application scalability and user experience. Key strategies include proper indexing based on query patterns, query optimization using execution plans, database normalization and denormalization trade-offs, connection pooling, and caching strategies. Monitoring tools help identify slow queries, lock contention, and resource bottlenecks. Advanced techniques include partitioning, sharding, read replicas, and database clustering. Regular maintenance tasks include statistics updates, index rebuilding, and query plan cache management.",
			Category: "documentation",
			Tags:     []string{"database", "performance", "optimization", "indexing", "scalability"},
		},
		{
			ID:       "doc_016",
			Title:    "Troubleshooting Common Network Connectivity Issues",
			Content:  "Network connectivity issues can significantly impact application performance and user experience. Common problems include DNS resolution failures, firewall blocking, SSL/TLS certificate issues, and network latency. Diagnostic tools include ping, traceroute, nslookup, telnet, and packet capture analysis. Systematic troubleshooting involves checking physical connectivity, network configuration, DNS settings, firewall rules, and application logs. Best practices include implementing health checks, monitoring network metrics, maintaining network documentation, and establishing escalation procedures.",
			Category: "documentation",
			Tags:     []string{"networking", "troubleshooting", "connectivity", "diagnostics", "support"},
		},
	}
}
