package sqlinline

// Integration tokens hold the Gemini API key used for Veo generation. This is
// the only table the service touches.

const QSelectIntegrationToken = `--sql 3f1c2a84-95be-4a7e-9c41-2f60d0b7a915
select token
from integration_tokens
where provider = $1::text
limit 1;
`

const QUpsertIntegrationToken = `--sql b7a9f0d1-4c36-4e8a-8f52-6db1c4a0e273
insert into integration_tokens (id, provider, token, created_at, updated_at)
values (gen_random_uuid(), $1::text, $2::text, now(), now())
on conflict (provider) do update set
    token = excluded.token,
    updated_at = now();
`
