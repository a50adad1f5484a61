package query

// Fragments are GROQ sub-selections shared by every query. They are built
// only from other constants so assembled queries are byte-for-byte
// deterministic.

// ImageFields selects an image's asset metadata and editor crop/hotspot.
const ImageFields = `
    asset->{
      _id,
      url,
      metadata { lqip, dimensions { width, height } }
    },
    alt,
    crop,
    hotspot`

// CTAFields selects a call-to-action link.
const CTAFields = `
    text,
    link`

// CategoryFields selects a post category.
const CategoryFields = `
    _id,
    title,
    "slug": slug.current,
    color`

// PostFields selects the post card fields.
const PostFields = `
    _id,
    _updatedAt,
    title,
    description,
    "slug": slug.current,
    publishedAt,
    featured,
    variant,
    image {` + ImageFields + `
    },
    "categories": categories[]->{` + CategoryFields + `
    }`

// SEOFields selects the per-document SEO block.
const SEOFields = `
    title,
    description,
    noIndex,
    image {` + ImageFields + `
    }`

// SectionFields selects every section variant. Variant-specific nested
// references are expanded here; everything else comes through `...`.
const SectionFields = `
    ...,
    image {` + ImageFields + `
    },
    cta {` + CTAFields + `
    },
    secondaryCta {` + CTAFields + `
    },
    cards[] {
      ...,
      image {` + ImageFields + `
      },
      link {` + CTAFields + `
      }
    },
    packages[] {
      ...,
      cta {` + CTAFields + `
      }
    },
    testimonials[] {
      ...,
      image {` + ImageFields + `
      }
    },
    _type == "sectionBlog" => {
      "posts": posts[]->{` + PostFields + `
      }
    }`
