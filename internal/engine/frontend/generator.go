package frontend

import (
	"strings"

	"github.com/vampirenirmal/codeintel/internal/engine"
)

// DefaultTechnology is used when a request names no tech stack.
const DefaultTechnology = "react"

// generators is the ordered technology dispatch table. "react" is listed
// first so "react-native" and "preact"-style names resolve there before
// the broader keys; the final keyless entry falls back to React.
var generators = engine.GeneratorTable{
	{Keys: []string{"react", "next"}, Build: buildReact},
	{Keys: []string{"vue", "nuxt"}, Build: buildVue},
	{Keys: []string{"angular"}, Build: buildAngular},
	{Keys: []string{"svelte"}, Build: buildSvelte},
	{Build: buildReact},
}

func buildReact(req *engine.CodeGenerationRequest, ins engine.TechnologyInsights) string {
	feature := engine.SanitizeComment(req.FeatureDescription)
	var b strings.Builder
	b.WriteString(engine.Header(engine.CommentSlash, req.FeatureDescription, "React", req.Role))
	b.WriteString(`
import { useEffect, useMemo, useState } from 'react';

// Feature: ` + feature + `
export default function FeaturePanel() {
  const [items, setItems] = useState([]);
  const [error, setError] = useState(null);

  useEffect(() => {
    const controller = new AbortController();
    fetch('/api/feature?limit=50', { signal: controller.signal })
      .then((res) => res.json())
      .then((data) => setItems(data.items))
      .catch((err) => setError(err));
    return () => controller.abort();
  }, []);

  const count = useMemo(() => items.length, [items]);

  if (error) {
    return <main role="alert">Something went wrong loading this view.</main>;
  }

  return (
    <main>
      <header>
        <h1>Feature overview</h1>
        <p aria-live="polite">{count} items loaded</p>
      </header>
      <ul>
        {items.map((item) => (
          <li key={item.id}>
            <img src={item.iconUrl} alt={item.name} loading="lazy" />
            {item.name}
          </li>
        ))}
      </ul>
    </main>
  );
}
`)
	return b.String()
}

func buildVue(req *engine.CodeGenerationRequest, ins engine.TechnologyInsights) string {
	feature := engine.SanitizeComment(req.FeatureDescription)
	var b strings.Builder
	b.WriteString(engine.Header(engine.CommentSlash, req.FeatureDescription, "Vue", req.Role))
	b.WriteString(`
<script setup>
// Feature: ` + feature + `
import { computed, onMounted, ref } from 'vue';

const items = ref([]);
const error = ref(null);
const count = computed(() => items.value.length);

onMounted(async () => {
  try {
    const res = await fetch('/api/feature?limit=50');
    items.value = (await res.json()).items;
  } catch (err) {
    error.value = err;
  }
});
</script>

<template>
  <main>
    <header>
      <h1>Feature overview</h1>
      <p aria-live="polite">{{ count }} items loaded</p>
    </header>
    <p v-if="error" role="alert">Something went wrong loading this view.</p>
    <ul v-else>
      <li v-for="item in items" :key="item.id">
        <img :src="item.iconUrl" :alt="item.name" loading="lazy" />
        {{ item.name }}
      </li>
    </ul>
  </main>
</template>
`)
	return b.String()
}

func buildAngular(req *engine.CodeGenerationRequest, ins engine.TechnologyInsights) string {
	feature := engine.SanitizeComment(req.FeatureDescription)
	var b strings.Builder
	b.WriteString(engine.Header(engine.CommentSlash, req.FeatureDescription, "Angular", req.Role))
	b.WriteString(`
import { Component, OnInit } from '@angular/core';
import { HttpClient } from '@angular/common/http';

// Feature: ` + feature + `
@Component({
  selector: 'app-feature-panel',
  template: ` + "`" + `
    <main>
      <header>
        <h1>Feature overview</h1>
        <p aria-live="polite">{{ items.length }} items loaded</p>
      </header>
      <ul>
        <li *ngFor="let item of items; trackBy: trackById">
          <img [src]="item.iconUrl" [alt]="item.name" loading="lazy" />
          {{ item.name }}
        </li>
      </ul>
    </main>
  ` + "`" + `,
})
export class FeaturePanelComponent implements OnInit {
  items: Array<{ id: number; name: string; iconUrl: string }> = [];

  constructor(private http: HttpClient) {}

  ngOnInit(): void {
    this.http
      .get<{ items: typeof this.items }>('/api/feature?limit=50')
      .subscribe((data) => (this.items = data.items));
  }

  trackById(_index: number, item: { id: number }): number {
    return item.id;
  }
}
`)
	return b.String()
}

func buildSvelte(req *engine.CodeGenerationRequest, ins engine.TechnologyInsights) string {
	feature := engine.SanitizeComment(req.FeatureDescription)
	var b strings.Builder
	b.WriteString(engine.Header(engine.CommentSlash, req.FeatureDescription, "Svelte", req.Role))
	b.WriteString(`
<script>
  // Feature: ` + feature + `
  import { onMount } from 'svelte';

  let items = [];
  let error = null;

  onMount(async () => {
    try {
      const res = await fetch('/api/feature?limit=50');
      items = (await res.json()).items;
    } catch (err) {
      error = err;
    }
  });
</script>

<main>
  <header>
    <h1>Feature overview</h1>
    <p aria-live="polite">{items.length} items loaded</p>
  </header>
  {#if error}
    <p role="alert">Something went wrong loading this view.</p>
  {:else}
    <ul>
      {#each items as item (item.id)}
        <li>
          <img src={item.iconUrl} alt={item.name} loading="lazy" />
          {item.name}
        </li>
      {/each}
    </ul>
  {/if}
</main>
`)
	return b.String()
}
