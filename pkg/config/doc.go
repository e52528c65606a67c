// Package config loads pagegen template definitions, project settings
// and render data from disk.
//
// Template definition files are YAML (.yaml, .yml) or JSON (anything else).
// A file holds either a collection or a single template:
//
//	version: "1"
//	templates:
//	  - id: city-page
//	    sections:
//	      - id: hero
//	        content: "<h1>{{business.name}} in {{city.name}}</h1>"
//	      - id: premium
//	        content: "<p>Gold partner</p>"
//	        guard: {field: tier, operator: equals, value: gold}
//	    seo:
//	      title: "{{business.name}} | {{city.name}}"
//	      description: "..."
//	      keywords: ["{{business.category}}", "{{city.name}}"]
//	      schema:
//	        "@context": https://schema.org
//	        "@type": LocalBusiness
//	        name: "{{business.name}}"
//
// Every document is checked against an embedded JSON Schema before it is
// decoded, so structural mistakes are reported with their location.
//
// Template sources may be plain paths or glob patterns; "**" matches
// across directories. Matches are loaded in sorted order so registration
// order is stable.
//
// Data files (JSON or YAML) supply render contexts. A JSONPath selector
// picks the records to render:
//
//	contexts, err := config.SelectContexts(data, "$.listings[*]")
package config
