// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

const intentResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "type": {
      "type": "string",
      "enum": ["name", "company", "industry", "location", "time", "general"]
    },
    "keywords": {
      "type": "array",
      "items": {"type": "string"}
    },
    "filters": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "company": {"type": "string"},
        "industry": {"type": "string"},
        "location": {"type": "string"},
        "timeframe": {"type": "string"},
        "priority": {"type": "string", "enum": ["high", "medium", "low"]}
      },
      "additionalProperties": false
    }
  },
  "required": ["type", "keywords", "filters"],
  "additionalProperties": false
}`

const intentSystemPrompt = `You are a search intent parser for a personal contact manager. Analyze the
user's search query and return the search intent as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

` + intentResponseSchema + `

Rules:
- "type" is the dominant intent of the query. Use "general" when no single intent dominates.
- "keywords" are the lowercase content words of the query, excluding filler words like "find", "show", "me", "who".
- Populate a filter only when the query clearly states it. Leave unstated filters out of the object entirely.
- "timeframe" captures temporal phrases verbatim in lowercase, e.g. "yesterday", "last week", "this month".
- "priority" is only set when the query mentions importance, e.g. "important contacts" means "high".
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example (filtered):
Input: "people from Google I met last week"
Output:
{
  "type": "company",
  "keywords": ["google"],
  "filters": {"company": "Google", "timeframe": "last week"}
}

Example (informal, no filters):
Input: "blockchain folks"
Output:
{
  "type": "general",
  "keywords": ["blockchain"],
  "filters": {}
}

Example (temporal):
Input: "who did i meet yesterday"
Output:
{
  "type": "time",
  "keywords": ["meet"],
  "filters": {"timeframe": "yesterday"}
}`

const explanationPromptTemplate = `Generate a brief, natural explanation for why these contacts match the search query.

Query: "%s"
Top match: %s (%s) - Match reasons: %s
Total matches: %d

Write a concise 1-2 sentence explanation. Be conversational and helpful.`

const profileSystemPrompt = `You extract structured contact information from business card text and
free-form notes about meeting someone. Return the extracted profile as JSON.

Output ONLY valid JSON. Do not include any preamble, explanation, greeting, or acknowledgment. Start your
response directly with the opening brace { and end with the closing brace }. Use exactly these keys:

{
  "name": "person's full name or empty string",
  "email": "email address or empty string",
  "phone": "phone number or empty string",
  "company": "company name or empty string",
  "role": "job title or empty string",
  "location": "city or region or empty string",
  "industry": "industry or empty string",
  "event_type": "kind of event where they met or empty string",
  "tags": ["searchable", "topic", "tags"]
}

Rules:
- Tags must be lowercase, 1-2 words each, describing topics, skills, interests, and context worth searching for later.
- Include 3-8 tags. Do not invent facts that are not in the input.
- Use an empty string for any field the input does not state.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`
