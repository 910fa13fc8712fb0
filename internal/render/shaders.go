package render

const particleVertex = `#version 330 core
layout(location = 0) in vec2 a_position;
layout(location = 1) in float a_speed;
uniform vec2 u_resolution;
out float v_speed;

void main() {
    vec2 clip = (a_position / u_resolution) * 2.0 - 1.0;
    clip.y = -clip.y;
    gl_Position = vec4(clip, 0.0, 1.0);
    v_speed = a_speed;
    gl_PointSize = 3.0 + a_speed * 12.0;
}
`

const particleFragment = `#version 330 core
in float v_speed;
out vec4 out_color;

void main() {
    float dist = length(gl_PointCoord - vec2(0.5));
    if (dist > 0.5) discard;
    float alpha = smoothstep(0.5, 0.0, dist);
    float brightness = 0.4 + v_speed * 0.8;
    vec3 color = mix(vec3(0.3, 0.4, 0.9), vec3(1.0, 0.7, 0.9), v_speed);
    out_color = vec4(color, alpha * brightness);
}
`

const quadVertex = `#version 330 core
layout(location = 0) in vec2 a_corner;
layout(location = 1) in vec4 a_rect;
layout(location = 2) in int a_variant;
uniform vec2 u_resolution;
uniform float u_scroll;
out vec2 v_uv;
flat out int v_variant;

void main() {
    vec2 p = a_rect.xy + a_corner * a_rect.zw - vec2(0.0, u_scroll);
    vec2 clip = (p / u_resolution) * 2.0 - 1.0;
    clip.y = -clip.y;
    gl_Position = vec4(clip, 0.0, 1.0);
    v_uv = a_corner;
    v_variant = a_variant;
}
`

const quadFragment = `#version 330 core
in vec2 v_uv;
flat in int v_variant;
uniform float u_phase;
out vec4 out_color;

const float TAU = 6.28318530718;

vec3 palette(float t) {
    return 0.5 + 0.5 * cos(TAU * (t + vec3(0.0, 0.33, 0.67)));
}

vec3 pattern(int variant, vec2 uv, float ph) {
    float d = distance(uv, vec2(0.5));
    if (variant == 0) {
        float s = sin(10.0 * uv.x + ph) + sin(10.0 * uv.y + 1.3 * ph) + sin(10.0 * (uv.x + uv.y) + 0.7 * ph);
        return palette(s / 6.0 + 0.1 * ph);
    }
    if (variant == 1) {
        float w = uv.x + 0.1 * sin(8.0 * uv.y + ph);
        float s = 0.5 + 0.5 * sin(40.0 * w);
        return palette(0.2 * s + 0.05 * ph) * (0.6 + 0.4 * s);
    }
    if (variant == 2) {
        float s = 0.5 + 0.5 * sin(40.0 * d - 2.0 * ph);
        return palette(d + 0.1 * ph) * s;
    }
    if (variant == 3) {
        float a = atan(uv.y - 0.5, uv.x - 0.5);
        float s = 0.5 + 0.5 * sin(5.0 * a + 30.0 * d - 2.0 * ph);
        return palette(a / TAU + 0.1 * ph) * s;
    }
    if (variant == 4) {
        float gx = abs(fract(8.0 * uv.x + 0.2 * ph) - 0.5);
        float gy = abs(fract(8.0 * uv.y) - 0.5);
        float s = 1.0 - smoothstep(0.0, 0.06, min(gx, gy));
        return mix(palette(0.6 + 0.05 * ph) * 0.2, palette(0.1 * ph), s);
    }
    if (variant == 5) {
        float d1 = distance(uv, vec2(0.25, 0.5));
        float d2 = distance(uv, vec2(0.75, 0.5));
        float s = 0.5 + 0.25 * (sin(50.0 * d1 - 2.0 * ph) + sin(50.0 * d2 - 2.0 * ph));
        return palette(0.5 * s + 0.1 * ph) * s;
    }
    float t = fract((uv.x + uv.y) * 0.5 - 0.1 * ph);
    float s = smoothstep(0.0, 0.5, t) * (1.0 - smoothstep(0.5, 1.0, t));
    return palette(0.3 * uv.x + 0.1 * ph) * (0.3 + 0.7 * s);
}

void main() {
    out_color = vec4(pattern(v_variant, v_uv, u_phase), 1.0);
}
`
