package model

import (
	"fmt"
	"time"
)

// Config carries every lexicon and table the engine needs. It is built
// once at startup, validated, and threaded read-only through component
// constructors. Nothing in the core mutates it afterwards.
type Config struct {
	Extract     ExtractConfig     `yaml:"extract" json:"extract"`
	Lexicon     LexiconConfig     `yaml:"lexicon" json:"lexicon"`
	Categories  []CategoryTerms   `yaml:"categories" json:"categories"`
	Routing     RoutingConfig     `yaml:"routing" json:"routing"`
	Scoring     ScoringConfig     `yaml:"scoring" json:"scoring"`
	Adapters    AdapterConfig     `yaml:"adapters" json:"adapters"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Store       StoreConfig       `yaml:"store" json:"store"`
}

// ExtractConfig bounds the claim extractor
type ExtractConfig struct {
	MinWords       int     `yaml:"min_words" json:"min_words"`
	MinChars       int     `yaml:"min_chars" json:"min_chars"`
	MaxChars       int     `yaml:"max_chars" json:"max_chars"`
	StitchMinChars int     `yaml:"stitch_min_chars" json:"stitch_min_chars"`
	StitchMaxChars int     `yaml:"stitch_max_chars" json:"stitch_max_chars"`
	DedupThreshold float64 `yaml:"dedup_threshold" json:"dedup_threshold"`
}

// LexiconConfig holds the static word lists the detectors and filters use
type LexiconConfig struct {
	AssertionVerbs  []string `yaml:"assertion_verbs" json:"assertion_verbs"`
	HedgeWords      []string `yaml:"hedge_words" json:"hedge_words"`
	DanglingStarts  []string `yaml:"dangling_starts" json:"dangling_starts"`
	SubjectPronouns []string `yaml:"subject_pronouns" json:"subject_pronouns"`
	Boilerplate     []string `yaml:"boilerplate" json:"boilerplate"`
	Abbreviations   []string `yaml:"abbreviations" json:"abbreviations"`
	OrgSuffixes     []string `yaml:"org_suffixes" json:"org_suffixes"`
	KnownEntities   []string `yaml:"known_entities" json:"known_entities"`
	Stopwords       []string `yaml:"stopwords" json:"stopwords"`
}

// CategoryTerms is one category's keyword bag. Words match whole-word,
// phrases match by substring and score double.
type CategoryTerms struct {
	Category Category `yaml:"category" json:"category"`
	Words    []string `yaml:"words" json:"words"`
	Phrases  []string `yaml:"phrases" json:"phrases"`
}

// RouteSignal is one content signal: a keyword bag with a hit threshold
// and the per-source boosts it applies when it fires.
type RouteSignal struct {
	Name    string         `yaml:"name" json:"name"`
	Words   []string       `yaml:"words" json:"words"`
	Phrases []string       `yaml:"phrases" json:"phrases"`
	MinHits int            `yaml:"min_hits" json:"min_hits"`
	Boosts  map[string]int `yaml:"boosts" json:"boosts"`
}

// RoutingConfig drives evidence-source selection per claim
type RoutingConfig struct {
	DefaultSources map[Category][]string `yaml:"default_sources" json:"default_sources"`
	Signals        []RouteSignal         `yaml:"signals" json:"signals"`
	// SourceOrder is the fixed deterministic tie-break order.
	SourceOrder []string `yaml:"source_order" json:"source_order"`
	MaxSources  int      `yaml:"max_sources" json:"max_sources"`
}

// ScoreWeights are the maximum contributions per scoring signal
type ScoreWeights struct {
	TokenOverlap float64 `yaml:"token_overlap" json:"token_overlap"`
	EntityMatch  float64 `yaml:"entity_match" json:"entity_match"`
	NumberMatch  float64 `yaml:"number_match" json:"number_match"`
	UnitBonus    float64 `yaml:"unit_bonus" json:"unit_bonus"`
	Keyphrase    float64 `yaml:"keyphrase" json:"keyphrase"`
	EvidenceType float64 `yaml:"evidence_type" json:"evidence_type"`
	Temporal     float64 `yaml:"temporal" json:"temporal"`
}

// ScoringConfig drives evidence scoring and the auto-status guardrails
type ScoringConfig struct {
	Weights             ScoreWeights                          `yaml:"weights" json:"weights"`
	EvidenceTypeWeights map[Category]map[EvidenceType]float64 `yaml:"evidence_type_weights" json:"evidence_type_weights"`
	// TimeSensitive categories take the stale penalty beyond the decay window.
	TimeSensitive      []Category `yaml:"time_sensitive" json:"time_sensitive"`
	SupportedThreshold int        `yaml:"supported_threshold" json:"supported_threshold"`
	PartialThreshold   int        `yaml:"partial_threshold" json:"partial_threshold"`
}

// AdapterConfig bounds every evidence-source adapter call
type AdapterConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	MaxPerSource int           `yaml:"max_per_source" json:"max_per_source"`
	RatePerSec   float64       `yaml:"rate_per_sec" json:"rate_per_sec"`
	Burst        int           `yaml:"burst" json:"burst"`
	CacheTTL     time.Duration `yaml:"cache_ttl" json:"cache_ttl"`
}

// ConcurrencyConfig bounds orchestrator parallelism
type ConcurrencyConfig struct {
	FetchWorkers int `yaml:"fetch_workers" json:"fetch_workers"`
}

// HTTPConfig configures the shared adapter HTTP client
type HTTPConfig struct {
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
}

// StoreConfig locates the persistence layer
type StoreConfig struct {
	Path string `yaml:"path" json:"path"`
}

// Validate fails fast on missing or inconsistent lexicons.
func (c *Config) Validate() error {
	if len(c.Lexicon.AssertionVerbs) == 0 {
		return fmt.Errorf("%w: assertion verb lexicon is empty", ErrConfig)
	}
	if len(c.Lexicon.HedgeWords) == 0 {
		return fmt.Errorf("%w: hedge word lexicon is empty", ErrConfig)
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("%w: no category keyword bags", ErrConfig)
	}
	if c.Extract.MinWords <= 0 || c.Extract.MinChars <= 0 || c.Extract.MaxChars <= c.Extract.MinChars {
		return fmt.Errorf("%w: extractor length gate bounds are inconsistent", ErrConfig)
	}
	if c.Extract.DedupThreshold <= 0 || c.Extract.DedupThreshold > 1 {
		return fmt.Errorf("%w: dedup threshold must be in (0,1]", ErrConfig)
	}
	if len(c.Routing.SourceOrder) == 0 {
		return fmt.Errorf("%w: routing source order is empty", ErrConfig)
	}
	if c.Routing.MaxSources <= 0 {
		return fmt.Errorf("%w: routing max_sources must be positive", ErrConfig)
	}
	for cat, srcs := range c.Routing.DefaultSources {
		if len(srcs) == 0 {
			return fmt.Errorf("%w: category %q has no default sources", ErrConfig, cat)
		}
	}
	if c.Scoring.SupportedThreshold <= c.Scoring.PartialThreshold {
		return fmt.Errorf("%w: supported threshold must exceed partial threshold", ErrConfig)
	}
	if c.Adapters.Timeout <= 0 || c.Adapters.MaxPerSource <= 0 {
		return fmt.Errorf("%w: adapter limits must be positive", ErrConfig)
	}
	if c.Concurrency.FetchWorkers <= 0 {
		return fmt.Errorf("%w: fetch worker count must be positive", ErrConfig)
	}
	return nil
}

// DefaultConfig returns the built-in configuration with full lexicons.
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			MinWords:       7,
			MinChars:       40,
			MaxChars:       240,
			StitchMinChars: 80,
			StitchMaxChars: 600,
			DedupThreshold: 0.85,
		},
		Lexicon: LexiconConfig{
			AssertionVerbs: []string{
				"is", "are", "was", "were", "has", "have", "had",
				"said", "says", "reported", "announced", "released",
				"shows", "show", "showed", "confirm", "confirms", "confirmed",
				"found", "reveals", "reveal", "revealed", "means", "meant",
				"grew", "fell", "rose", "dropped", "totaled", "reached",
				"causes", "cause", "caused", "leads", "led",
				"proved", "proves", "demonstrates", "established", "estimates",
			},
			HedgeWords: []string{
				"may", "might", "could", "possibly", "likely", "perhaps",
				"appears", "suggests", "suggest", "probably", "seemingly",
				"reportedly", "allegedly", "around", "roughly", "approximately",
			},
			DanglingStarts: []string{
				"and", "but", "or", "so", "because", "although", "while",
				"though", "yet",
			},
			SubjectPronouns: []string{
				"i", "we", "he", "she", "it", "they", "you",
				"this", "that", "these", "those", "there",
			},
			Boilerplate: []string{
				"like and subscribe", "hit the bell", "leave a comment",
				"link in the description", "sponsored by", "thanks for watching",
				"smash that", "don't forget to", "follow me on", "check out my",
				"in the comments", "patreon",
			},
			Abbreviations: []string{
				"Mr.", "Mrs.", "Ms.", "Dr.", "Prof.", "Sr.", "Jr.", "St.",
				"Inc.", "Corp.", "Ltd.", "Co.", "vs.", "etc.", "e.g.", "i.e.",
				"U.S.", "U.K.", "U.N.", "No.", "Fig.", "Jan.", "Feb.", "Mar.",
				"Apr.", "Jun.", "Jul.", "Aug.", "Sep.", "Oct.", "Nov.", "Dec.",
			},
			OrgSuffixes: []string{
				"Inc", "Corp", "Corporation", "Ltd", "LLC", "Co", "PLC",
				"AG", "SA", "NV", "Group", "Holdings",
			},
			KnownEntities: []string{
				"Alphabet", "Google", "Microsoft", "Apple", "Amazon", "Meta",
				"Nvidia", "Tesla", "OpenAI", "DeepMind", "IBM", "Intel",
				"Oracle", "Netflix", "Boeing", "Lockheed Martin", "Pfizer",
				"Moderna", "Johnson & Johnson", "Goldman Sachs", "JPMorgan",
				"Berkshire Hathaway", "ExxonMobil", "Chevron", "Walmart",
				"SpaceX", "Stripe", "ByteDance", "TikTok", "Samsung", "TSMC",
				"Federal Reserve", "Treasury", "Pentagon", "NASA", "NATO",
				"World Bank", "IMF", "United Nations", "European Union",
			},
			Stopwords: []string{
				"the", "a", "an", "is", "are", "was", "were", "be", "been",
				"being", "have", "has", "had", "do", "does", "did", "will",
				"would", "could", "should", "may", "might", "can", "shall",
				"not", "no", "in", "on", "at", "to", "for", "of", "with",
				"by", "from", "as", "or", "and", "but", "if", "so", "than",
				"then", "that", "this", "it", "its", "their", "there",
				"about", "also", "just", "more",
			},
		},
		Categories: defaultCategories(),
		Routing:    defaultRouting(),
		Scoring:    defaultScoring(),
		Adapters: AdapterConfig{
			Timeout:      10 * time.Second,
			MaxPerSource: 5,
			RatePerSec:   1,
			Burst:        5,
			CacheTTL:     15 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{FetchWorkers: 4},
		HTTP: HTTPConfig{
			UserAgent: "Veritas/1.0 (local research tool)",
			Timeout:   15 * time.Second,
		},
		Store: StoreConfig{Path: "veritas.sqlite"},
	}
}

func defaultCategories() []CategoryTerms {
	return []CategoryTerms{
		{
			Category: CategoryFinance,
			Words: []string{
				"revenue", "revenues", "earnings", "eps", "gaap", "fiscal",
				"sec", "filing", "filings", "inflation", "gdp", "deficit",
				"debt", "bond", "bonds", "stock", "stocks", "shares",
				"dividend", "dividends", "margin", "margins", "capex",
				"quarterly", "quarter", "guidance", "valuation", "equity",
				"ipo", "treasury", "bank", "banks", "monetary", "yield",
				"billion", "trillion", "investor", "investors", "fund",
				"funds", "portfolio", "buyback", "backlog",
			},
			Phrases: []string{
				"market cap", "operating income", "net income", "cash flow",
				"free cash flow", "federal reserve", "interest rate",
				"balance sheet", "income statement", "hedge fund",
				"asset management", "wall street",
			},
		},
		{
			Category: CategoryHealth,
			Words: []string{
				"health", "healthcare", "hospital", "disease", "vaccine",
				"pandemic", "drug", "drugs", "fda", "clinical", "patient",
				"patients", "medical", "cancer", "treatment", "diagnosis",
				"mortality", "pharmaceutical", "cholesterol", "ldl", "hdl",
				"trial", "trials", "diet", "obesity", "stroke", "diabetes",
				"medicine", "physician", "surgery", "symptom", "symptoms",
				"infection", "therapy", "placebo", "randomized",
				"cardiovascular", "coronary", "triglycerides",
			},
			Phrases: []string{
				"blood pressure", "mental health", "heart disease",
				"side effect", "double-blind",
			},
		},
		{
			Category: CategoryScience,
			Words: []string{
				"research", "study", "experiment", "discovery", "nasa",
				"space", "physics", "biology", "genome", "species", "cells",
				"bacteria", "virus", "protein", "dna", "rna", "scientist",
				"scientists", "researchers", "journal", "hypothesis",
				"laboratory", "evolution", "ecosystem", "astronomy",
				"telescope", "planet", "galaxy", "chemistry", "molecule",
				"atom", "theorem", "correlation", "statistical",
			},
			Phrases: []string{"peer-reviewed", "meta-analysis", "sample size"},
		},
		{
			Category: CategoryTech,
			Words: []string{
				"ai", "gpu", "chip", "chips", "semiconductor", "software",
				"algorithm", "neural", "robot", "robotics", "autonomous",
				"cloud", "computing", "startup", "github", "llm",
				"transformer", "api", "platform", "digital", "internet",
				"server", "servers", "database", "processor", "cpu",
				"hardware", "encryption", "blockchain", "bitcoin", "app",
				"code", "developer", "developers", "automation", "quantum",
			},
			Phrases: []string{
				"artificial intelligence", "machine learning", "open source",
				"data center",
			},
		},
		{
			Category: CategoryPolitics,
			Words: []string{
				"president", "congress", "senate", "house", "vote", "voted",
				"election", "democrat", "democrats", "republican",
				"republicans", "legislation", "law", "policy", "government",
				"administration", "cabinet", "constitutional", "bill",
				"bipartisan", "campaign", "governor", "mayor", "regulation",
				"regulations", "regulatory", "federal",
			},
			Phrases: []string{"supreme court", "white house", "executive order"},
		},
		{
			Category: CategoryMilitary,
			Words: []string{
				"military", "defense", "army", "navy", "war", "weapon",
				"weapons", "missile", "missiles", "nato", "pentagon",
				"troops", "combat", "drone", "drones", "sanctions",
				"deterrence", "warfare", "battalion",
			},
			Phrases: []string{"armed forces", "air force", "defense spending"},
		},
		{
			Category: CategoryEducation,
			Words: []string{
				"education", "school", "schools", "college", "colleges",
				"university", "universities", "student", "students",
				"teacher", "teachers", "tuition", "enrollment", "graduation",
				"literacy", "curriculum", "degree", "degrees", "scholarship",
			},
			Phrases: []string{
				"higher education", "student debt", "test scores",
				"graduation rate",
			},
		},
		{
			Category: CategoryEnergyClimate,
			Words: []string{
				"climate", "emissions", "carbon", "energy", "solar", "wind",
				"renewable", "renewables", "fossil", "coal", "oil", "gas",
				"temperature", "warming", "methane", "drought", "wildfire",
				"hurricane", "grid", "battery", "batteries", "nuclear",
			},
			Phrases: []string{
				"climate change", "greenhouse gas", "sea level",
				"carbon dioxide", "global warming",
			},
		},
		{
			Category: CategoryLabor,
			Words: []string{
				"jobs", "employment", "unemployment", "labor", "labour",
				"payroll", "payrolls", "wages", "workforce", "hiring",
				"layoffs", "union", "unions", "strike", "workers",
				"overtime", "nonfarm",
			},
			Phrases: []string{
				"job openings", "labor force", "participation rate",
				"minimum wage", "hourly earnings",
			},
		},
		{Category: CategoryGeneral},
	}
}

func defaultRouting() RoutingConfig {
	return RoutingConfig{
		MaxSources: 6,
		SourceOrder: []string{
			"yfinance", "sec_edgar", "fred", "pubmed", "openfda", "arxiv",
			"crossref", "google_factcheck", "bls", "cbo", "usaspending",
			"census", "worldbank", "patentsview", "wikipedia",
		},
		DefaultSources: map[Category][]string{
			CategoryFinance:       {"yfinance", "sec_edgar", "fred", "bls", "cbo", "usaspending", "google_factcheck", "crossref", "wikipedia"},
			CategoryHealth:        {"pubmed", "openfda", "google_factcheck", "crossref", "wikipedia"},
			CategoryScience:       {"arxiv", "crossref", "pubmed", "worldbank", "wikipedia"},
			CategoryTech:          {"arxiv", "crossref", "patentsview", "google_factcheck", "wikipedia"},
			CategoryPolitics:      {"google_factcheck", "cbo", "usaspending", "crossref", "wikipedia"},
			CategoryMilitary:      {"google_factcheck", "usaspending", "crossref", "wikipedia"},
			CategoryEducation:     {"census", "worldbank", "crossref", "google_factcheck", "wikipedia"},
			CategoryEnergyClimate: {"worldbank", "crossref", "arxiv", "google_factcheck", "wikipedia"},
			CategoryLabor:         {"bls", "fred", "census", "google_factcheck", "crossref", "wikipedia"},
			CategoryGeneral:       {"google_factcheck", "wikipedia", "crossref", "arxiv", "bls", "census"},
		},
		Signals: []RouteSignal{
			{
				Name:    "company_mention",
				MinHits: 1,
				Boosts:  map[string]int{"yfinance": 10, "sec_edgar": 5, "wikipedia": 4},
			},
			{
				Name:    "academic_language",
				MinHits: 2,
				Words: []string{
					"study", "studies", "research", "researchers", "published",
					"journal", "paper", "findings", "experiment", "hypothesis",
					"methodology", "statistical", "correlation", "causation",
					"university", "professor", "phd",
				},
				Phrases: []string{"peer-reviewed", "meta-analysis", "systematic review", "sample size"},
				Boosts:  map[string]int{"arxiv": 8, "crossref": 4},
			},
			{
				Name:    "health_clinical",
				MinHits: 2,
				Words: []string{
					"patients", "clinical", "trial", "trials", "treatment",
					"therapy", "diagnosis", "symptoms", "disease", "drug",
					"fda", "vaccine", "mortality", "survival", "dosage",
					"placebo", "randomized", "cholesterol", "cardiovascular",
				},
				Phrases: []string{"double-blind", "blood pressure"},
				Boosts:  map[string]int{"pubmed": 8},
			},
			{
				Name:    "financial_metric",
				MinHits: 2,
				Words: []string{
					"revenue", "revenues", "earnings", "income", "profit",
					"margin", "eps", "dividend", "valuation", "billion",
					"million", "quarter", "quarterly", "annual", "operating",
					"capex", "debt", "equity", "ipo", "gdp", "inflation",
					"cpi", "unemployment", "treasury",
				},
				Phrases: []string{
					"market cap", "stock price", "share price", "cash flow",
					"growth rate", "balance sheet", "interest rate",
					"federal reserve", "monetary policy",
				},
				Boosts: map[string]int{"yfinance": 8, "sec_edgar": 4, "fred": 6},
			},
			{
				Name:    "drug_pharma",
				MinHits: 2,
				Words: []string{
					"drug", "drugs", "fda", "adverse", "recall", "recalled",
					"approved", "approval", "pharmaceutical", "medication",
					"dosage", "prescription", "label", "warning",
				},
				Phrases: []string{"side effect"},
				Boosts:  map[string]int{"openfda": 10},
			},
			{
				Name:    "labor_employment",
				MinHits: 1,
				Words: []string{
					"jobs", "employment", "unemployment", "labor", "labour",
					"payroll", "payrolls", "wages", "workforce", "hiring",
					"layoffs", "nonfarm",
				},
				Phrases: []string{"job openings", "labor force", "quit rate", "participation rate", "hourly earnings"},
				Boosts:  map[string]int{"bls": 10, "fred": 4},
			},
			{
				Name:    "budget_spending",
				MinHits: 1,
				Words: []string{
					"spending", "budget", "deficit", "surplus", "appropriation",
					"entitlement", "medicare", "medicaid", "cbo", "stimulus",
					"bailout", "sequestration",
				},
				Phrases: []string{
					"national debt", "federal debt", "social security",
					"congressional budget", "debt ceiling", "government spending",
					"federal spending",
				},
				Boosts: map[string]int{"cbo": 10, "usaspending": 8},
			},
			{
				Name:    "demographic",
				MinHits: 1,
				Words: []string{
					"population", "census", "demographic", "demographics",
					"poverty", "homeownership", "rent", "uninsured",
				},
				Phrases: []string{
					"median income", "household income", "poverty rate",
					"health insurance", "education attainment",
				},
				Boosts: map[string]int{"census": 10},
			},
			{
				Name:    "international",
				MinHits: 2,
				Words: []string{
					"global", "world", "international", "developing",
					"developed", "exports", "imports", "gni", "gini",
					"inequality", "literacy",
				},
				Phrases: []string{
					"foreign aid", "external debt", "life expectancy",
					"infant mortality", "renewable energy", "co2 emissions",
					"carbon emissions",
				},
				Boosts: map[string]int{"worldbank": 10},
			},
			{
				Name:    "patent_invention",
				MinHits: 1,
				Words:   []string{"patent", "patents", "patented", "invention", "trademark"},
				Phrases: []string{"intellectual property", "patent filing", "utility patent", "design patent"},
				Boosts:  map[string]int{"patentsview": 8},
			},
			{
				Name:    "date_present",
				MinHits: 1,
				Boosts:  map[string]int{"sec_edgar": 2, "fred": 2},
			},
			{
				Name:    "number_present",
				MinHits: 1,
				Boosts:  map[string]int{"fred": 3, "yfinance": 2},
			},
			{
				Name:    "entity_present",
				MinHits: 1,
				Boosts:  map[string]int{"wikipedia": 6, "google_factcheck": 3},
			},
		},
	}
}

func defaultScoring() ScoringConfig {
	return ScoringConfig{
		Weights: ScoreWeights{
			TokenOverlap: 20,
			EntityMatch:  20,
			NumberMatch:  25,
			UnitBonus:    10,
			Keyphrase:    15,
			EvidenceType: 10,
			Temporal:     10,
		},
		SupportedThreshold: 85,
		PartialThreshold:   70,
		TimeSensitive: []Category{
			CategoryFinance, CategoryPolitics, CategoryLabor,
		},
		EvidenceTypeWeights: map[Category]map[EvidenceType]float64{
			CategoryFinance:       {EvidenceFiling: 10, EvidenceDataset: 8, EvidenceGov: 6, EvidenceFactcheck: 5, EvidencePaper: 3, EvidenceSecondary: 2},
			CategoryHealth:        {EvidencePaper: 10, EvidenceGov: 9, EvidenceFactcheck: 6, EvidenceDataset: 5, EvidenceFiling: 2, EvidenceSecondary: 2},
			CategoryScience:       {EvidencePaper: 10, EvidenceDataset: 7, EvidenceGov: 6, EvidenceFactcheck: 5, EvidenceFiling: 1, EvidenceSecondary: 2},
			CategoryTech:          {EvidencePaper: 8, EvidenceFiling: 7, EvidenceGov: 6, EvidenceDataset: 6, EvidenceFactcheck: 5, EvidenceSecondary: 2},
			CategoryPolitics:      {EvidenceFactcheck: 10, EvidenceGov: 9, EvidenceDataset: 6, EvidencePaper: 4, EvidenceFiling: 3, EvidenceSecondary: 2},
			CategoryMilitary:      {EvidenceGov: 10, EvidenceFactcheck: 8, EvidenceDataset: 5, EvidencePaper: 4, EvidenceFiling: 2, EvidenceSecondary: 2},
			CategoryEducation:     {EvidenceGov: 9, EvidenceDataset: 8, EvidencePaper: 6, EvidenceFactcheck: 5, EvidenceFiling: 1, EvidenceSecondary: 2},
			CategoryEnergyClimate: {EvidenceDataset: 9, EvidencePaper: 8, EvidenceGov: 7, EvidenceFactcheck: 5, EvidenceFiling: 3, EvidenceSecondary: 2},
			CategoryLabor:         {EvidenceGov: 10, EvidenceDataset: 9, EvidenceFactcheck: 5, EvidencePaper: 4, EvidenceFiling: 2, EvidenceSecondary: 2},
			CategoryGeneral:       {EvidenceFactcheck: 8, EvidenceGov: 7, EvidencePaper: 6, EvidenceDataset: 6, EvidenceFiling: 4, EvidenceSecondary: 3},
		},
	}
}
