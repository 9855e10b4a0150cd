package scaffolding

// StarterTemplate is the default resume page template written by setup. It
// exercises the full helper set: conditionals, length-gated sections,
// iteration with positional metadata, date formatting and the raw
// color-style injection.
const StarterTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{settings.seo.title}}</title>
  {{#if settings.seo.description}}<meta name="description" content="{{settings.seo.description}}">{{/if}}
  {{#if settings.seo.keywords}}<meta name="keywords" content="{{settings.seo.keywords}}">{{/if}}
  {{#if settings.seo.canonicalUrl}}<link rel="canonical" href="{{settings.seo.canonicalUrl}}">{{/if}}
  <link rel="stylesheet" href="css/main.css">
  {{{customColorStyles}}}
</head>
<body>
  <header class="hero">
    {{#if personal.profileImage}}
    <img class="profile" src="images/{{personal.profileImage}}" alt="{{personal.name}}">
    {{/if}}
    <h1>{{personal.name}}</h1>
    <p class="title">{{personal.title}}</p>
    <p class="contact">
      <a href="mailto:{{personal.email}}">{{personal.email}}</a>
      {{#if personal.phone}} &middot; {{personal.phone}}{{/if}}
      {{#if personal.location.primary}} &middot; {{personal.location.primary}}{{/if}}
    </p>
  </header>

  {{#if summary.professional}}
  <section id="summary">
    <h2>Summary</h2>
    <p>{{summary.professional}}</p>
    {{#if summary.about}}<p class="about">{{summary.about}}</p>{{/if}}
  </section>
  {{/if}}

  {{#if experience.length}}
  <section id="experience">
    <h2>Experience</h2>
    {{#each experience}}
    <article class="job{{#if @first}} current{{/if}}">
      <h3>{{title}} &mdash; {{company}}</h3>
      <p class="dates">{{formatDate startDate}} &ndash; {{formatDate endDate}}</p>
      {{#if achievements.length}}
      <ul>
        {{#each achievements}}
        <li>{{this}}</li>
        {{/each}}
      </ul>
      {{/if}}
    </article>
    {{#unless @last}}<hr>{{/unless}}
    {{/each}}
  </section>
  {{/if}}

  {{#if education.length}}
  <section id="education">
    <h2>Education</h2>
    {{#each education}}
    <article class="degree">
      <h3>{{degree}}</h3>
      <p>{{institution}}{{#if location}} &middot; {{location}}{{/if}}</p>
      {{#if endDate}}<p class="dates">{{formatDate endDate}}</p>{{/if}}
    </article>
    {{/each}}
  </section>
  {{/if}}

  {{#if skills.categories.length}}
  <section id="skills">
    <h2>Skills</h2>
    {{#each skills.categories}}
    <div class="skill-category">
      <h3>{{name}}</h3>
      <ul class="skill-list">
        {{#each items}}
        <li>{{this}}</li>
        {{/each}}
      </ul>
    </div>
    {{/each}}
  </section>
  {{/if}}

  {{#if projects.length}}
  <section id="projects">
    <h2>Projects</h2>
    {{#each projects}}
    <article class="project">
      <h3>{{#if url}}<a href="{{url}}">{{title}}</a>{{else}}{{title}}{{/if}}</h3>
      <p>{{description}}</p>
      {{#if technologies.length}}
      <p class="tech">
        {{#each technologies}}{{this}}{{#unless @last}}, {{/unless}}{{/each}}
      </p>
      {{/if}}
    </article>
    {{/each}}
  </section>
  {{/if}}

  <footer>
    <p>&copy; {{currentYear}} {{personal.name}}</p>
  </footer>
  <script src="js/main.js"></script>
</body>
</html>
`

// StarterStylesheet is the default theme written to styles/main.css.
const StarterStylesheet = `:root {
  --color-primary: #2563eb;
  --color-secondary: #64748b;
  --color-accent: #f59e0b;
}

* { box-sizing: border-box; }

body {
  margin: 0 auto;
  max-width: 48rem;
  padding: 2rem 1rem;
  font-family: Georgia, "Times New Roman", serif;
  color: #1f2937;
  line-height: 1.6;
}

.hero { text-align: center; margin-bottom: 2rem; }
.hero h1 { color: var(--color-primary); margin-bottom: 0.25rem; }
.hero .title { color: var(--color-secondary); font-size: 1.2rem; margin-top: 0; }
.profile { width: 8rem; border-radius: 50%; }

section { margin-bottom: 2rem; }
h2 {
  color: var(--color-primary);
  border-bottom: 2px solid var(--color-accent);
  padding-bottom: 0.25rem;
}

.dates { color: var(--color-secondary); font-style: italic; }
.skill-list { list-style: none; padding: 0; }
.skill-list li { display: inline-block; margin: 0 0.5rem 0.5rem 0; padding: 0.1rem 0.5rem;
  background: #f1f5f9; border-radius: 0.25rem; }

footer { text-align: center; color: var(--color-secondary); font-size: 0.9rem; }
`

// StarterScript is the default scripts/main.js.
const StarterScript = `document.addEventListener("DOMContentLoaded", function () {
  document.querySelectorAll('a[href^="#"]').forEach(function (link) {
    link.addEventListener("click", function (ev) {
      var target = document.querySelector(link.getAttribute("href"));
      if (target) {
        ev.preventDefault();
        target.scrollIntoView({ behavior: "smooth" });
      }
    });
  });
});
`
