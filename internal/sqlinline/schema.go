package sqlinline

// Schema statements run in order by infra.Migrate. Every statement is
// idempotent.
var Schema = []string{QCreateUsers, QCreateProjects, QCreateDonations, QCreateBeneficiaries, QCreateVolunteers, QCreateIntegrationTokens}

const QCreateUsers = `--sql 71d0a53a-8cc7-4541-ae03-64a518e10971
create table if not exists users (
    id            bigserial primary key,
    username      varchar(150) not null unique,
    email         varchar(254) not null default '',
    password_hash text not null,
    first_name    varchar(150) not null default '',
    last_name     varchar(150) not null default '',
    is_staff      boolean not null default false,
    date_of_birth date,
    profile_photo text not null default '',
    date_joined   timestamptz not null default now()
);
`

const QCreateProjects = `--sql 0c8a2a91-1f97-4bd2-b019-0bce78714311
create table if not exists projects (
    id          bigserial primary key,
    title       varchar(200) not null,
    description text not null,
    start_date  date not null,
    end_date    date,
    status      varchar(50) not null,
    created_by  bigint not null references users(id) on delete cascade
);
`

const QCreateDonations = `--sql 5eca8dff-2ca1-4a0f-8d7b-f3cf78833f2b
create table if not exists donations (
    id         bigserial primary key,
    donor_id   bigint not null references users(id) on delete cascade,
    project_id bigint not null references projects(id) on delete cascade,
    amount     bigint not null check (amount > 0),
    date       timestamptz not null default now(),
    status     varchar(20) not null default 'pending',
    reference  text not null default ''
);
`

const QCreateBeneficiaries = `--sql cf11f4da-fabb-4e32-8e58-65ef9597733e
create table if not exists beneficiaries (
    id           bigserial primary key,
    project_id   bigint not null references projects(id) on delete cascade,
    name         varchar(200) not null,
    contact_info varchar(200) not null,
    approved     boolean not null default false
);
`

const QCreateVolunteers = `--sql e1157c26-61b6-401a-b1d6-35b02c9e650f
create table if not exists volunteers (
    id          bigserial primary key,
    user_id     bigint not null references users(id) on delete cascade,
    project_id  bigint not null references projects(id) on delete cascade,
    role        varchar(100) not null,
    status      varchar(10) not null default 'pending' check (status in ('pending', 'approved', 'rejected')),
    date_joined timestamptz not null default now()
);
`

const QCreateIntegrationTokens = `--sql 17369a75-476f-4bc7-a6c2-efefbf3f79bf
create table if not exists integration_tokens (
    id         uuid primary key default gen_random_uuid(),
    provider   text not null unique,
    token      text not null,
    properties jsonb not null default '{}'::jsonb,
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);
`
